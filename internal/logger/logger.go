package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	Development bool      // Text output at debug level instead of JSON at info level
	Quiet       bool      // Only warnings and errors reach Output
	Output      io.Writer // Usually os.Stderr so command output stays clean
	SentryDSN   string    // Optional: errors are also sent to Sentry
}

// Init builds the global logger and installs it as the slog default
func Init(opts Options) {
	level := slog.LevelInfo
	if opts.Development {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelWarn
	}

	var handlers []slog.Handler
	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(opts.Output, &slog.HandlerOptions{Level: level}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{Level: level}))
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Flush waits for buffered Sentry events before the process exits
func Flush() {
	sentry.Flush(2 * time.Second)
}
