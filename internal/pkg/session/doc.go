// Package session issues and verifies cart session tokens.
//
// A cart session is an HS512 JWT whose subject is the session id that keys
// the cart and checkout state. Requests without a token run as the
// anonymous role; a verified token makes the caller a shopper.
package session
