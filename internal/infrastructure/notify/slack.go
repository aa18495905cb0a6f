package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// DefaultSlackChannel canal Slack por defecto.
const DefaultSlackChannel = "#inventory-alerts"

// SlackMessage payload de un webhook de Slack.
type SlackMessage struct {
	Channel     string            `json:"channel"`
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

type SlackAttachment struct {
	Color  string       `json:"color"`
	Fields []SlackField `json:"fields"`
	Footer string       `json:"footer"`
	Ts     int64        `json:"ts"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// SlackChannel arma el mensaje y lo registra en el log (envío simulado).
type SlackChannel struct {
	channel string
	log     *logger.Logger
}

func NewSlackChannel(channel string, log *logger.Logger) *SlackChannel {
	if log == nil {
		log = logger.Nop()
	}
	if channel == "" {
		channel = DefaultSlackChannel
	}
	return &SlackChannel{channel: channel, log: log.Component("notify.slack")}
}

func (s *SlackChannel) Name() string { return notification.ChannelSlack }

// BuildSlackMessage mensaje Slack de una notificación.
func BuildSlackMessage(channel string, n notification.Notification) SlackMessage {
	return SlackMessage{
		Channel:  channel,
		Username: "InventoryPro Bot",
		Text:     fmt.Sprintf("🚨 *%s PRIORITY ALERT*", strings.ToUpper(n.Severity)),
		Attachments: []SlackAttachment{{
			Color: slackColor(n.Severity),
			Fields: []SlackField{
				{Title: "Product", Value: n.ProductName, Short: true},
				{Title: "Alert Type", Value: notification.AlertTypeLabel(n.AlertType), Short: true},
				{Title: "Message", Value: n.Message, Short: false},
				{Title: "Assigned to", Value: fmt.Sprintf("%s (%s)", n.AssignedTo.Name, n.AssignedTo.Role), Short: true},
			},
			Footer: "InventoryPro",
			Ts:     n.Timestamp.Unix(),
		}},
	}
}

func slackColor(severity string) string {
	switch severity {
	case entity.SeverityHigh:
		return "danger"
	case entity.SeverityMedium:
		return "warning"
	}
	return "good"
}

func (s *SlackChannel) Send(ctx context.Context, n notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(BuildSlackMessage(s.channel, n))
	if err != nil {
		return fmt.Errorf("slack: encode: %w", err)
	}
	s.log.Info().RawJSON("slack_message", raw).Msg("notificación slack enviada")
	return nil
}
