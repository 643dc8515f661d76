package observability

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

// Init configures sentry from SENTRY_DSN, SENTRY_ENVIRONMENT and
// SENTRY_RELEASE. With no DSN the whole package becomes a no-op, which is the
// normal state for a bridge running on an end-user machine.
func Init() (flush func(), active bool, err error) {
	dsn := strings.TrimSpace(os.Getenv("SENTRY_DSN"))
	if dsn == "" {
		enabled.Store(false)
		return func() {}, false, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      strings.TrimSpace(os.Getenv("SENTRY_ENVIRONMENT")),
		Release:          strings.TrimSpace(os.Getenv("SENTRY_RELEASE")),
		AttachStacktrace: true,
	}); err != nil {
		enabled.Store(false)
		return func() {}, false, err
	}

	enabled.Store(true)
	return func() {
		sentry.Flush(2 * time.Second)
	}, true, nil
}

// CaptureError reports err with the given tags. No-op when sentry is off.
func CaptureError(err error, tags map[string]string) {
	if err == nil || !enabled.Load() {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for key, value := range tags {
			scope.SetTag(key, value)
		}
		sentry.CaptureException(err)
	})
}

func Enabled() bool {
	return enabled.Load()
}
