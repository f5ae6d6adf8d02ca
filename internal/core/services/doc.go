// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Resolution (names, modifiers, lines, confirmations) is synchronous and
// pure over an immutable domain.Snapshot; the only blocking operation is
// the catalog refresh behind CatalogCache.
package services
