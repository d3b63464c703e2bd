package slack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
)

type notifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
	}
}

// NotifyTagCreated posts a message announcing the created tag
func (n *notifier) NotifyTagCreated(ctx context.Context, repo model.Repository, tag *model.PublishedTag) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Tag `%s` created in %s", tag.Name, repo.String()),
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(
					slack.NewTextBlockObject(slack.MarkdownType,
						fmt.Sprintf("*Tag created* `%s` in <https://github.com/%s|%s>", tag.Name, repo.String(), repo.String()),
						false, false),
					[]*slack.TextBlockObject{
						slack.NewTextBlockObject(slack.MarkdownType, "*Ref*\n"+tag.Ref, false, false),
						slack.NewTextBlockObject(slack.MarkdownType, "*SHA*\n"+tag.SHA, false, false),
					},
					nil,
				),
				slack.NewContextBlock("",
					slack.NewTextBlockObject(slack.PlainTextType, tag.Message, false, false),
				),
			},
		},
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook", goerr.V("tag", tag.Name))
	}

	return nil
}
