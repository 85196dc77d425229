// Package event holds the topics and payloads modules exchange over
// messaging, so publishers and consumers agree on one shape.
package event

// HeaderCorrelationID carries the request correlation id across brokers.
const HeaderCorrelationID string = "cID"
