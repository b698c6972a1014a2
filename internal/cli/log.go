package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines are stamped "HH:MM:SS.ms" and carry
// their details as key=value pairs after the message.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// sessionLogger tags every line with the editor session. Only the first
// group of the uuid is kept.
func sessionLogger(l *log.Logger, id string) *log.Logger {
	short, _, _ := strings.Cut(id, "-")
	return l.With("session", short)
}

// stage times one step of a command, such as replaying a script, and logs it
// once when it finishes.
type stage struct {
	logger *log.Logger
	start  time.Time
}

func startStage(l *log.Logger) *stage {
	return &stage{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time:
//
//	14:32:01.45 INFO Replayed script session=1b9d6bcd gestures=13 ignored=0 elapsed=2ms
func (s *stage) done(msg string, keyvals ...any) {
	elapsed := time.Since(s.start).Round(time.Millisecond)
	s.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default() for commands run without it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
