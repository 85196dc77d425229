// Package messaging publishes and consumes domain events (cart.item_added,
// checkout.address_confirmed) without tying modules to a broker. NATS, Kafka
// and an in-process driver are available.
package messaging
