// Package catalog stores brainrots and serves them over HTTP.
//
// Repository is the GORM persistence layer. It implements reconcile.Store,
// so the sync pipeline writes through it, and it backs the read endpoints.
// Natural key lookups only consider rows without an external id.
//
// # HTTP Endpoints
//
//   - GET /brainrots : paginated listing (?rarity=, ?limit=, ?offset=).
//   - GET /brainrots/:id : a single brainrot.
//   - GET /rarities : count per rarity tier.
//   - GET /images/:filename : cached artwork, served from the asset store.
package catalog
