// Package domain contains the core types of the Viveka loan-advisory
// dialogue engine: the conversation session aggregate, transcript messages,
// action affordances, and the events emitted while a conversation advances.
//
// Types here are persistence-agnostic. Adapters (HTTP, MCP, stores) depend on
// this package; it depends on nothing but the standard library.
package domain
