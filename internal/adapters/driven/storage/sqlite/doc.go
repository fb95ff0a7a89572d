// Package sqlite persists local client state in a single SQLite file.
//
// The document list and the user session are stored as JSON values under
// fixed keys in the local_state table, so the registry can be rehydrated
// after a restart. Schema changes go through embedded migrations.
package sqlite
