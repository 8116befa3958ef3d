// Package repositories implements SQLite persistence for locally cached dashboard data.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [CredentialRepository] : Stored bearer token and claims snapshot
//   - [ClassRepository] : Hook and format class caching with remote-ID lookups
//   - [PostRepository] : Trending post caching for offline viewing
//
// Cached rows mirror server-owned state; they are render cache only and never authoritative.
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
