// Package utils provides small text helpers shared by the source fetchers and the asset cache.
//
//   - Slug: filesystem-safe identifiers for cached image names.
//   - ParseAmount: first number in free text such as "$1,250".
//   - FirstNonEmpty: display-name style fallbacks.
package utils
