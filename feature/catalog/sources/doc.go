// Package sources fetches raw brainrot records from upstream sources and
// normalizes them into reconcile records.
//
// Every fetcher implements Fetcher. Sweep drives pagination for any of them:
// the first listing page must succeed, later failures keep the pages already
// collected.
//
// # Fetchers
//
//   - BadgeFetcher: the game's badge statistics API. Cursor paginated JSON,
//     rarity from win rate, icons from the thumbnails API.
//   - WikiFetcher: the fandom wiki. A listing page of links, then one
//     infobox page per brainrot parsed with goquery.
//
// Every outbound request waits on the fetcher's rate limiter first.
package sources
