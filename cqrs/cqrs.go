// Package cqrs separates state changing commands from read-only queries.
//
// Subpackages define the handler interfaces and composable wrappers for
// tracing, logging, timeouts and panic recovery.
package cqrs
