package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/infra/slack"
)

// Slack holds notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified when a tag is created",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("AUTOTAG_SLACK_WEBHOOK_URL"),
		},
	}
}

// Notifier returns a Slack notifier, or nil when no webhook is configured
func (c *Slack) Notifier() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slack.NewNotifier(c.WebhookURL)
}
