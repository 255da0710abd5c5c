// Package session orchestrates safe access to conversation sessions.
// The dialogue model has a single writer per conversation; the manager
// enforces that with reference-counted per-session locks, optionally backed
// by a distributed locker when multiple replicas share a store.
package session
