// Package tokenauthority implements bearer-token issuance, verification,
// and revocation inside the identity-access context of aegis.
//
// Layering:
// - domain: user/token/revocation entities and errors
// - application: commands/queries plus the two-tier revocation ledger
// - ports: stable boundaries for cache, store, directory, codec, clock
// - adapters: concrete HTTP, jwt, redis, memory, postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Do not import other context adapters into domain/application.
// - No unsigned claim feeds an authorization decision; the unsigned
//   peeks exist only for cheap early rejection and TTL bounding.
package tokenauthority
