// Package handlers contains HTTP handler interfaces, implementations, and middleware.
//
// This package provides:
//   - Health check interfaces and implementations
//   - API key authentication against bcrypt hashes
//   - Reusable middleware components
//
// # Health Checks
//
// The HealthChecker interface allows registering multiple named health checks
// that are executed in parallel:
//
//	checker := handlers.NewCompositeHealthChecker("v1.0.0")
//	checker.AddCheck("database", handlers.NewPingCheck(conn))
//	checker.AddCheck("cache", handlers.NewPingCheck(cache))
//
//	status := checker.Check(ctx)
//	if !status.Healthy {
//	    log.Printf("Health check failed: %s", status.Message)
//	}
//
// # Authentication
//
// Write endpoints can be protected with API keys. Only bcrypt hashes of the
// keys are configured:
//
//	hash, _ := handlers.HashAPIKey("s3cret")
//	auth, err := handlers.NewAPIKeyAuth("X-API-Key", []string{hash})
//	protected := auth.Middleware(mux)
package handlers
