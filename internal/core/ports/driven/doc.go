// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogSource: Paginated read of the remote product catalog
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SynonymStore: Alias table. Without it, names are matched as spoken.
//   - SchedulerStore: Warm-up task history. Without it, no warm-up runs.
//   - CatalogArchive: Local copy of catalog objects for offline use.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
