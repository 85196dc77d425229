// Package validator wraps go-playground/validator v10 with English messages
// and snake_case field keys. Request models are checked with Validate; the
// checkout rule table checks single values with Var.
package validator
