// Package domain contains the core types of the askdoc client.
//
// It has no dependencies outside the standard library. All state the
// render layer observes (document records, message turns, sessions) is
// defined here, along with the sentinel errors the services return.
package domain
