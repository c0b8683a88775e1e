package server

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Middleware pairs a Fiber handler with a registration priority.
// Handlers with higher priority run earlier in the request chain.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

// applyMiddlewares registers middlewares on the app in descending priority
// order. Entries with a nil handler are skipped.
func applyMiddlewares(app *fiber.App, middlewares []Middleware) {
	slices.SortStableFunc(middlewares, func(a, b Middleware) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	for _, mw := range middlewares {
		if mw.Handler == nil {
			continue
		}
		app.Use(mw.Handler)
	}
}
