package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/roster-sync/internal/metrics"
	"github.com/mauv0809/roster-sync/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts sync alerts to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	timeout   time.Duration
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		timeout:   10 * time.Second,
	}
}

func (s *Notifier) sendMessage(message slack.Message) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendPublishFailure(f notifier.PublishFailure) error {
	_, _, err := s.sendMessage(s.formatPublishFailure(f))
	return err
}

func (s *Notifier) SendSyncFailure(err error) error {
	_, _, sendErr := s.sendMessage(s.formatSyncFailure(err))
	return sendErr
}

// formatPublishFailure creates the Slack message for a rejected roster using Block Kit.
func (s *Notifier) formatPublishFailure(f notifier.PublishFailure) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "Roster publish failed", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	title := f.TournamentTitle
	if title == "" {
		title = "Tournament " + f.TournamentID
	}
	details := fmt.Sprintf("*%s* (`%s`)\nProvider: %s\nEntries: %d", title, f.TournamentID, f.Provider, f.Count)
	if f.Err != nil {
		details += fmt.Sprintf("\nError: %s", f.Err)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", details, false, false), nil, nil))

	blocks = append(blocks, timestampContext(f.At))
	return slack.NewBlockMessage(blocks...)
}

// formatSyncFailure creates the Slack message for a cycle that could not list its work.
func (s *Notifier) formatSyncFailure(err error) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", "Roster sync failed", true, false)
	bodyText := "The sync cycle stopped before processing any tournament."
	if err != nil {
		bodyText += fmt.Sprintf("\nError: %s", err)
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", bodyText, false, false), nil, nil),
		timestampContext(time.Time{}),
	)
}

func timestampContext(at time.Time) *slack.ContextBlock {
	if at.IsZero() {
		at = time.Now()
	}
	text := slack.NewTextBlockObject("mrkdwn", at.UTC().Format(time.RFC3339), false, false)
	return slack.NewContextBlock("", text)
}
