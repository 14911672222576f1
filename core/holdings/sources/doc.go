// Package sources implements holdings.Source over the HTTP indexers the bot
// reads NFT ownership from.
//
//   - Knowhere: open source. Lists the marketplace's collections, then runs a
//     cw721 "tokens" query per collection through the Terra FCD.
//   - LCD: fixed coverage. Runs the cw721 "tokens" query for a configured list
//     of contracts against an LCD node.
//   - Indexer: open source. A wallet-holdings REST endpoint returning every
//     contract the wallet holds in one call.
//
// Every client is rate limited and treats non-2xx answers, 429s, timeouts and
// malformed payloads as failures, never as empty holdings.
package sources
