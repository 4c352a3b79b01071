package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

var base = logrus.New()

// Init configures the process logger. Production gets JSON lines for log
// aggregation, everything else the text formatter.
func Init(env, level string) {
	base.SetOutput(os.Stdout)
	if env == "production" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

// SetOutput redirects the process logger; tests use it to capture lines.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func Base() *logrus.Logger {
	return base
}

// WithRequestID stores the request id so service code can log with it.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// FromContext returns an entry tagged with the request id and operation name.
func FromContext(ctx context.Context, operation string) *logrus.Entry {
	rid := RequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return base.WithFields(logrus.Fields{
		"request_id": rid,
		"operation":  operation,
	})
}
