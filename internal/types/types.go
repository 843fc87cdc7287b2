// internal/types/types.go
package types

// EntityID identifies a live entity for its whole lifetime.
type EntityID uint64
