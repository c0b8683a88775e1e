// Package middleware bundles the Fiber middleware used by filedrop HTTP
// servers: panic recovery, tracing, request timeouts, metadata propagation,
// alerting, request logging, and error-to-response conversion.
//
// Every constructor returns a server.Middleware carrying a Priority; the
// server sorts the set descending before registration, so a higher priority
// means an earlier position in the chain:
//
//	Recovery     1000
//	Tracing       900
//	Timeout       800
//	MetaInject    700
//	Alerting      600
//	Logger        500
//	ErrorHandler  400
//
// The full chain is wired like this:
//
//	srv := server.NewHTTPServer(cfg, []server.Middleware{
//		middleware.NewRecoveryMW(log),
//		middleware.NewTracingMW(),
//		middleware.NewTimeoutMW(10 * time.Second),
//		middleware.NewMetaInjectMW("filedrop", "1.0.0"),
//		middleware.NewAlertingMW(),
//		middleware.NewLoggerMW(log),
//		middleware.NewErrorHandlerMW(false),
//	})
//
// A single component can also be attached to a plain Fiber app through its
// Handler field:
//
//	app.Use(middleware.NewErrorHandlerMW(false).Handler)
package middleware
