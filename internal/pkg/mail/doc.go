// Package mail sends transactional e-mail such as the shipping address
// confirmation. Use cases depend on Mail; SMTP and Log are the drivers.
package mail
