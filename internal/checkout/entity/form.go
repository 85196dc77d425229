package entity

// FormState is the submission state of the shipping form. Editing a field
// only changes its raw value; validity and errors change on Submit.
type FormState struct {
	Values AddressFormInput
	Errors FieldErrors
	Valid  bool
}

func NewFormState(values AddressFormInput) *FormState {
	return &FormState{Values: values, Errors: FieldErrors{}}
}

// Set updates one raw value by field name. Unknown names are ignored.
func (f *FormState) Set(field, value string) {
	switch field {
	case "name":
		f.Values.Name = value
	case "lastname":
		f.Values.Lastname = value
	case "address":
		f.Values.Address = value
	case "zipcode":
		f.Values.Zipcode = value
	case "city":
		f.Values.City = value
	case "email":
		f.Values.Email = value
	case "phone":
		f.Values.Phone = value
	}
}

// Error returns the message shown next to field, if any.
func (f *FormState) Error(field string) string {
	return f.Errors[field]
}

// Submit validates every field at once. The error map is replaced as a
// whole so fields that became valid lose their old messages.
func (f *FormState) Submit(v *AddressValidator) *ValidatedAddress {
	addr, errs := v.Validate(f.Values)
	if errs != nil {
		f.Errors = errs
		f.Valid = false
		return nil
	}

	f.Errors = FieldErrors{}
	f.Valid = true
	return addr
}
