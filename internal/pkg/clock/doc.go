// Package clock abstracts time.Now so cart sessions, address confirmations
// and cache expiry can be tested against a pinned instant.
package clock
