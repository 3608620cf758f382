// Package wrapper provides wrappers for command handlers.
package wrapper
