// Package server holds the HTTP server configuration.
//
// The entry point in cmd/start.go builds the Fiber application; this package
// only defines the port, the API key and the set of public path prefixes the
// auth middleware lets through without a key.
package server
