// Package rules exposes rule administration for a community: adding a rule,
// listing the configured rules with their positional index, and removing a
// rule by index.
//
// Edits to one community are serialised with a keyed lock so concurrent
// admins cannot lose each other's writes. A rule whose role the bot cannot
// manage is refused and the stored configuration is left untouched.
//
// # Endpoints
//
//   - POST /guilds/:guild/rules
//   - GET /guilds/:guild/rules
//   - DELETE /guilds/:guild/rules/:index
package rules
