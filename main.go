package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/gomart/internal/app"
)

// @title           Gomart API
// @version         1.0
// @description     Gomart serves the storefront catalog, session carts and checkout shipping address APIs.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  CartSession
// @in header
// @name X-Cart-Session
// @description Token returned by POST /api/v1/cart/session.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
