// Package server provides a configurable HTTP server built on Fiber.
package server

import "github.com/gofiber/fiber/v2"

// HTTPServer wraps a Fiber application with prioritized middleware and a
// consistent error response format. Use NewHTTPServer to create one.
type HTTPServer struct {
	cfg        Config
	router     *fiber.App
	listenAddr string
}

// NewHTTPServer builds an HTTPServer from cfg. The middlewares are
// registered in descending priority order before any route handlers.
func NewHTTPServer(cfg Config, middlewares []Middleware) *HTTPServer {
	router := fiber.New(fiber.Config{
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
		IdleTimeout:              cfg.IdleTimeout,
		BodyLimit:                cfg.BodyLimit,
		ErrorHandler:             newFiberErrorHandler(cfg.HideErrorDetails),
		DisableStartupMessage:    true,
		Immutable:                true,
		EnableSplittingOnParsers: true,
	})

	applyMiddlewares(router, middlewares)

	return &HTTPServer{
		cfg:        cfg,
		router:     router,
		listenAddr: cfg.Address(),
	}
}

// RegisterRouter invokes registerFunc with the underlying router so the
// caller can attach its route handlers.
func (s *HTTPServer) RegisterRouter(registerFunc func(r fiber.Router)) {
	registerFunc(s.router)
}

// App exposes the underlying Fiber application. Tests use it to drive
// requests through app.Test without opening a listener.
func (s *HTTPServer) App() *fiber.App {
	return s.router
}

// Start listens for incoming HTTP requests on the configured address.
// It blocks until the server stops.
func (s *HTTPServer) Start() error {
	return s.router.Listen(s.listenAddr)
}

// Stop shuts the server down gracefully, letting in-flight requests finish.
func (s *HTTPServer) Stop() error {
	return s.router.Shutdown()
}
