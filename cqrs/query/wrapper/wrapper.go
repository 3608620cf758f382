// Package wrapper provides wrappers for query handlers.
package wrapper
