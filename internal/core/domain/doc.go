// Package domain defines the core business entities for orderbot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CatalogObject: A raw typed object fetched from the remote catalog
//   - Snapshot: An immutable, indexed view of one complete catalog fetch
//   - SynonymRule: A configured alias for an item plus implied modifiers
//   - OrderRequest / OrderResult: The resolution engine boundary
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
