// Package registry provides the generic named registry that every simreg
// entity kind is stored in. Entries are populated during the startup phase
// and the registry is sealed before any lookup-driven work begins; after
// that it is read-only.
package registry
