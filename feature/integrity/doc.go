// Package integrity verifies that the catalog's storage is consistent.
//
// # Checks Provided
//
//   - Schema: the brainrots table has every column the catalog reads and writes.
//   - Images: every image path stored on a catalog row resolves to a file in the asset store.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/images : Runs the image check.
package integrity
