package event

const AddressConfirmedTopic string = "checkout.address_confirmed"
const AddressConfirmedConsumerCart string = "checkout_address_confirmed_cart"

// AddressConfirmedMessage is published after a shipping address passes
// validation and is stored.
type AddressConfirmedMessage struct {
	SessionID   string `json:"session_id"`
	AddressID   int64  `json:"address_id,string"`
	Email       string `json:"email"`
	ConfirmedAt int64  `json:"confirmed_at"`
}
