// Package wrapper provides decorators for repogen stores.
//
// Every decorator is itself a repogen.Store, so they compose freely:
//
//	store := wrapper.NewLoggingStore(wrapper.NewTracingStore(pgStore, "products"), log, "products")
package wrapper

import (
	"github.com/rise-and-shine/catalog/observability/metrics"
	"github.com/rise-and-shine/catalog/repogen"
)

// Operation names used in logs, spans and metric labels.
const (
	opGetByID = "get_by_id"
	opGetAll  = "get_all"
	opAdd     = "add"
	opUpdate  = "update"
	opDelete  = "delete"
)

// outcome classifies the result of a store call.
func outcome(err error, found bool) string {
	switch {
	case repogen.IsNotFound(err):
		return metrics.OutcomeNotFound
	case err != nil:
		return metrics.OutcomeError
	case !found:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeOK
	}
}
