package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/catalog/cqrs/command"
	"github.com/rise-and-shine/catalog/observability/logger"
)

type LoggerCommandWrapper[I command.Input, R command.Result] struct {
	logger logger.Logger
	next   command.Command[I, R]
}

// NewLoggerCommandWrapper logs every execution with its duration and input.
// Failures caused by the caller (validation, not found, conflict) are logged at
// warn level, everything else at error level.
func NewLoggerCommandWrapper[I command.Input, R command.Result](
	log logger.Logger,
	cmdName string,
) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &LoggerCommandWrapper[I, R]{
			logger: log.Named("cqrs.command.logger").With("command_name", cmdName),
			next:   next,
		}
	}
}

func (cmd *LoggerCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := cmd.next.Execute(ctx, input)

	log := cmd.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("input", input)

	switch {
	case err == nil:
		log.Info("command executed")
	case isClientError(err):
		log.Warnx(err)
	default:
		log.Errorx(err)
	}

	return result, err
}

func isClientError(err error) bool {
	switch errx.AsErrorX(err).Type() {
	case errx.T_Validation, errx.T_NotFound, errx.T_Conflict:
		return true
	default:
		return false
	}
}
