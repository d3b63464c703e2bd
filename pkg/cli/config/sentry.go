package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/domain/types"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string

	// Transport replaces the HTTP transport of the Sentry client when set
	Transport sentry.Transport

	enabled bool
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN, fatal errors are reported when set",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("AUTOTAG_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Destination: &c.Env,
			Sources:     cli.EnvVars("AUTOTAG_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client. Nothing is done without DSN.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "autotag@" + types.Version,
		Transport:   c.Transport,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry", goerr.V("env", c.Env))
	}
	c.enabled = true

	return nil
}

// Capture reports err to Sentry and waits for delivery
func (c *Sentry) Capture(ctx context.Context, err error) {
	if !c.enabled || err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	eventID := hub.CaptureException(err)
	if !hub.Flush(sentryFlushTimeout) {
		ctxlog.From(ctx).Warn("timed out sending error to Sentry")
		return
	}

	if eventID != nil {
		ctxlog.From(ctx).Info("error reported to Sentry", slog.String("event_id", string(*eventID)))
	}
}
