// Package sessionauthority implements role and session management inside
// the identity-access context of aegis.
//
// Layering:
// - domain: entities, the typed policy document model, invariants, errors
// - application: commands/queries using explicit ports
// - ports: stable boundaries for persistence, credentials, clock, events
// - adapters: concrete HTTP, memory, postgres, and credential implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Do not import other context adapters into domain/application.
// - The plaintext credential triad exists only in the assume-role response;
//   every persisted value derives from the one-way fingerprint.
package sessionauthority
