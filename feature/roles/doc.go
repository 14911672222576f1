// Package roles exposes on-demand reconciliation: a user asks which roles
// their wallet earns, the engine brings their roles up to date across every
// community and the reply lists the roles they now hold.
//
// # Endpoints
//
//   - GET /users/:user/roles?private=true&dry_run=true
package roles
