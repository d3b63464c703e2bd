package config_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/autotag/pkg/cli/config"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

func TestSentry_Capture(t *testing.T) {
	transport := &sentry.MockTransport{}
	cfg := &config.Sentry{
		DSN:       "https://public@sentry.example.com/1",
		Env:       "test",
		Transport: transport,
	}
	gt.NoError(t, cfg.Configure())
	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })

	err := goerr.Wrap(types.ErrVersionNotFound, "no version identified using the package extraction")
	cfg.Capture(context.Background(), err)

	events := transport.Events()
	gt.Equal(t, len(events), 1)
	gt.Equal(t, events[0].Environment, "test")
	gt.True(t, len(events[0].Exception) > 0)

	var found bool
	for _, ex := range events[0].Exception {
		if strings.Contains(ex.Value, "no version identified") {
			found = true
		}
	}
	gt.True(t, found)
}

func TestSentry_Disabled(t *testing.T) {
	cfg := &config.Sentry{}
	gt.NoError(t, cfg.Configure())

	// no client is configured, so nothing is sent and nothing panics
	cfg.Capture(context.Background(), errors.New("fatal"))
}
