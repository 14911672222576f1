// Package guildconfig persists each community's ordered rule list.
//
// Two backends implement Store: ObjectStore keeps one JSON document per
// community in object storage, DBStore keeps the same document in the
// guild_configs table. Both use the persisted layout of rules.GuildConfig,
// so documents written by either backend are interchangeable.
//
// A community with no stored document is reported as absent, not as an
// error. Stores do no locking; callers serialise read-modify-write cycles
// per community.
package guildconfig
