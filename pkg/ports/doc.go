// Package ports defines the driven-side interfaces of the Viveka engine:
// session persistence and distributed locking. Adapters under
// internal/adapters implement these contracts; the shared contract suite in
// contract.go keeps implementations honest.
package ports
