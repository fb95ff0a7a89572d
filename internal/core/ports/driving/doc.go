// Package driving defines the interfaces that the UI calls IN on.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and TUI adapters depend on these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter or service package
package driving
