package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

// fxLogger reports container lifecycle events as structured zerolog entries.
// Failures are logged at error level; the rest stay at debug.
type fxLogger struct {
	l zerolog.Logger
}

var _ fxevent.Logger = (*fxLogger)(nil)

func Fx() fxevent.Logger {
	return &fxLogger{
		l: log.Logger.With().Str("evt.name", "fx.init").Logger(),
	}
}

func (f *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		f.result(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		f.result(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Provided:
		f.result(e.Err).
			Str("constructor", e.ConstructorName).
			Str("types", strings.Join(e.OutputTypeNames, ", ")).
			Str("module", e.ModuleName).
			Msg("provided")
	case *fxevent.Invoked:
		f.result(e.Err).
			Str("function", e.FunctionName).
			Str("module", e.ModuleName).
			Msg("invoked")
	case *fxevent.Started:
		f.result(e.Err).Msg("started")
	case *fxevent.Stopped:
		f.result(e.Err).Msg("stopped")
	case *fxevent.RollingBack:
		f.l.Error().Err(e.StartErr).Msg("start failed, rolling back")
	case *fxevent.RolledBack:
		f.result(e.Err).Msg("rolled back")
	}
}

func (f *fxLogger) result(err error) *zerolog.Event {
	if err != nil {
		return f.l.Error().Err(err)
	}
	return f.l.Debug()
}
