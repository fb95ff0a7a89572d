// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Gateway: the backend API (upload, ingestion status, chat, deletion)
//   - DocumentRegistry: the in-memory document collection
//   - ChatLog: the in-memory message list of the active conversation
//   - SessionStore: persisted user session
//   - StateStore: persisted document list for startup rehydration
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
