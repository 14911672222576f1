// Package wallet stores the link between a platform user and the wallet
// address their holdings are read from.
//
// Links live in the wallet_links table and are a plain upsert; proving
// ownership of the address is left to whoever calls the link endpoint.
//
// # Endpoints
//
//   - PUT /users/:user/wallet links or relinks an address.
//   - GET /users/:user/wallet returns the linked address.
package wallet
