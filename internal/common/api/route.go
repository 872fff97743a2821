package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's Api type; Setup registers its
// endpoints on the app.
type Route interface {
	Setup(app *fiber.App)
}
