package entity

import (
	"math"
	"strconv"
	"strings"
)

type varValidator interface {
	Var(field any, tag string) error
}

type rule struct {
	field   string
	label   string
	value   func(AddressFormInput) string
	numeric bool
	tag     string
	message string
}

var addressRules = []rule{
	{field: "name", value: func(in AddressFormInput) string { return in.Name }},
	{field: "lastname", value: func(in AddressFormInput) string { return in.Lastname }},
	{
		field:   "address",
		value:   func(in AddressFormInput) string { return in.Address },
		tag:     "min=2",
		message: "Address must be at least 2 characters long",
	},
	{
		field:   "zipcode",
		label:   "Zipcode",
		value:   func(in AddressFormInput) string { return in.Zipcode },
		numeric: true,
		tag:     "gte=5",
		message: "Zipcode must be at least 5 digits long",
	},
	{
		field:   "city",
		value:   func(in AddressFormInput) string { return in.City },
		tag:     "min=2",
		message: "City must be at least 2 characters long",
	},
	{
		field:   "email",
		value:   func(in AddressFormInput) string { return in.Email },
		tag:     "email",
		message: "Invalid email format",
	},
	{
		field:   "phone",
		label:   "Phone number",
		value:   func(in AddressFormInput) string { return in.Phone },
		numeric: true,
		tag:     "gte=10",
		message: "Phone number must be at least 10 digits long",
	},
}

// AddressValidator checks a whole form in one pass over a fixed rule table.
type AddressValidator struct {
	v varValidator
}

func NewAddressValidator(v varValidator) *AddressValidator {
	return &AddressValidator{v: v}
}

// Validate returns either the complete ValidatedAddress or every violated
// field with its message, never both.
func (a *AddressValidator) Validate(in AddressFormInput) (*ValidatedAddress, FieldErrors) {
	errs := FieldErrors{}
	nums := make(map[string]float64, 2)

	for _, r := range addressRules {
		raw := r.value(in)
		if r.tag == "" {
			continue
		}

		if !r.numeric {
			if err := a.v.Var(raw, r.tag); err != nil {
				errs[r.field] = r.message
			}
			continue
		}

		n, ok := coerceNumber(raw)
		if !ok {
			errs[r.field] = r.label + " must be a number"
			continue
		}
		if err := a.v.Var(n, r.tag); err != nil {
			errs[r.field] = r.message
			continue
		}
		nums[r.field] = n
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ValidatedAddress{
		Name:     in.Name,
		Lastname: in.Lastname,
		Address:  in.Address,
		Zipcode:  nums["zipcode"],
		City:     in.City,
		Email:    in.Email,
		Phone:    nums["phone"],
	}, nil
}

// coerceNumber converts form text the way a browser Number() call does:
// surrounding whitespace is ignored, blank text is 0, and 0x/0o/0b prefixes,
// decimals and exponents are accepted. Only finite values are kept.
func coerceNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		n, err := strconv.ParseInt(s, 0, 64)
		return float64(n), err == nil
	}

	// ParseFloat also knows inf and nan spellings that are not numbers here.
	if strings.ContainsAny(s, "iInN") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}
