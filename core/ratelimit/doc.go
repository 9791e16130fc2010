// Package ratelimit enforces a minimum delay between outbound requests to one source.
//
// It is a thin wrapper over golang.org/x/time/rate configured with burst 1,
// which yields strictly fixed inter-request spacing.
package ratelimit
