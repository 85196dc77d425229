package validator

// Validator checks structs by their `validate` tags and single values
// against a tag expression.
type Validator interface {
	Validate(data any) error
	Var(field any, tag string) error
}
