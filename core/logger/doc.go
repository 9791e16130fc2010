// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise, with json or console encoding. WithRayID attaches the request RayID
// from a Fiber context so all entries for one request can be correlated, and
// Component names the child loggers used by the ingestion pipeline.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
