// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation for admin and sync routes; public prefixes
//     (health, swagger, images, catalog reads) are skipped.
//   - RayID: a unique request ID injected into the context and the response
//     headers so zap entries can be correlated.
package middleware
