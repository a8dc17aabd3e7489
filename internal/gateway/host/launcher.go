package host

import (
	"context"

	"go.uber.org/zap"
)

// Launcher hands a URI (tel:, sms:, mailto:, https:, app:) to whatever can
// open it.
type Launcher interface {
	Launch(ctx context.Context, uri string) error
}

// LogLauncher only logs the URI.
type LogLauncher struct {
	Log *zap.Logger
}

// Launch implements Launcher.
func (l LogLauncher) Launch(_ context.Context, uri string) error {
	if l.Log != nil {
		l.Log.Info("launch", zap.String("uri", uri))
	}
	return nil
}
