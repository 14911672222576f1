// Package rules defines community ownership rules and evaluates them
// against a holdings snapshot.
//
// A GuildConfig is the ordered list of GuildRules of one community. Rules are
// addressed by their position in that list, which is what users see in the
// rule listing and what they pass back to remove a rule.
//
// Evaluate is pure: given the same snapshot and rule it always returns the
// same Verdict, and it never performs I/O. Unknown holdings propagate as
// Indeterminate so that a source outage cannot cause a revoke.
//
// The persisted JSON layout is
//
//	{ "rules": [ { "version": "1.0",
//	               "nft": { "<contract>": { "tokenIds": ["1"], "quantity": 1 } },
//	               "token": {}, "nativeToken": {},
//	               "roleName": "Holder" } ] }
package rules
