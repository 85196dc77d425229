// Package uid generates identifiers: UUIDv7 strings for sessions, events and
// correlation ids, and snowflake numbers for persisted shipping addresses.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
