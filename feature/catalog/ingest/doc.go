// Package ingest runs sync passes: list a source, normalize each record,
// cache its image and reconcile it into the catalog.
//
// The Orchestrator owns a single-flight guard. RunNow and Start fail with
// ErrAlreadyInProgress while a pass is running, and Status never blocks.
// Records are processed one at a time; a failing record is counted and
// the pass moves on. Only an unreachable source listing aborts a pass.
//
// Scheduler triggers RunNow on a cron schedule (default Sundays 02:00
// America/New_York) and skips a trigger while a pass is running.
//
// # HTTP Endpoints
//
//   - POST /admin/sync : start a pass (202), or ?wait=true to run it inline.
//   - GET /admin/sync/status : running flag, last sync time and last result.
package ingest
