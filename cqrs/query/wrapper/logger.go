package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/cqrs/query"
	"github.com/rise-and-shine/catalog/observability/logger"
)

// LoggerQueryWrapper logs query executions. Successful reads are logged at debug level.
type LoggerQueryWrapper[I query.Input, R query.Result] struct {
	logger logger.Logger
	next   query.Query[I, R]
}

func NewLoggerQueryWrapper[I query.Input, R query.Result](log logger.Logger, queryName string) query.WrapFunc[I, R] {
	return func(next query.Query[I, R]) query.Query[I, R] {
		return &LoggerQueryWrapper[I, R]{
			logger: log.Named("cqrs.query.logger").With("query_name", queryName),
			next:   next,
		}
	}
}

func (q *LoggerQueryWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := q.next.Execute(ctx, input)

	log := q.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("input", input)

	switch {
	case err == nil:
		log.Debug("query executed")
	case errx.AsErrorX(err).Type() == errx.T_NotFound, errx.AsErrorX(err).Type() == errx.T_Validation:
		log.Warnx(err)
	default:
		log.Errorx(err)
	}

	return result, err
}
