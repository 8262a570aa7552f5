package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"pustaka-market/internal/config"
	"pustaka-market/internal/domain"
)

// Channel message ceilings. Telegram is the binding constraint in practice;
// the whatsapp and email values are practical upper bounds.
const (
	telegramMaxLength = 4096
	whatsappMaxLength = 65536
	emailMaxLength    = 100000
)

const emailSubject = "About your purchase request"

// Message is a generated outreach text with its validation verdict. An
// over-limit message is surfaced to the admin, never silently truncated.
type Message struct {
	Text      string `json:"text"`
	IsValid   bool   `json:"is_valid"`
	Length    int    `json:"length"`
	MaxLength int    `json:"max_length"`
}

type Service interface {
	BuildMessage(req *domain.PurchaseRequest, channel domain.ContactChannel) Message
	BuildLink(req *domain.PurchaseRequest, channel domain.ContactChannel, to string) (string, error)
	SendEmail(ctx context.Context, req *domain.PurchaseRequest, to string) error
	SendNotificationEmail(ctx context.Context, to, subject, text string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

// MaxLengthFor returns the message ceiling of a contact channel.
func MaxLengthFor(channel domain.ContactChannel) int {
	switch channel {
	case domain.ChannelTelegram:
		return telegramMaxLength
	case domain.ChannelWhatsApp:
		return whatsappMaxLength
	case domain.ChannelEmail:
		return emailMaxLength
	}
	return telegramMaxLength
}

func (s *service) BuildMessage(req *domain.PurchaseRequest, channel domain.ContactChannel) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! Regarding your purchase request for the %s: %q ($%.2f).", req.ItemType, req.ItemTitle, req.Amount)

	if req.UserMessage != nil && strings.TrimSpace(*req.UserMessage) != "" {
		fmt.Fprintf(&b, "\n\nYour message: %s", strings.TrimSpace(*req.UserMessage))
	}

	fmt.Fprintf(&b, "\n\nRequest ID: %s", req.ID)

	text := b.String()
	maxLength := MaxLengthFor(channel)
	length := len([]rune(text))

	return Message{
		Text:      text,
		IsValid:   length <= maxLength,
		Length:    length,
		MaxLength: maxLength,
	}
}

// BuildLink produces the channel URL an admin opens to start the
// conversation. The message body is always query-escaped.
func (s *service) BuildLink(req *domain.PurchaseRequest, channel domain.ContactChannel, to string) (string, error) {
	msg := s.BuildMessage(req, channel)
	if !msg.IsValid {
		return "", &domain.MessageTooLongError{
			Channel:   channel,
			Length:    msg.Length,
			MaxLength: msg.MaxLength,
		}
	}

	switch channel {
	case domain.ChannelEmail:
		return "mailto:" + to + "?subject=" + escapeQuery(emailSubject) + "&body=" + escapeQuery(msg.Text), nil
	case domain.ChannelTelegram:
		handle := strings.TrimPrefix(to, "@")
		return "https://t.me/" + handle + "?text=" + escapeQuery(msg.Text), nil
	case domain.ChannelWhatsApp:
		phone := strings.TrimPrefix(to, "+")
		return "https://wa.me/" + phone + "?text=" + escapeQuery(msg.Text), nil
	}
	return "", fmt.Errorf("unknown contact channel %q", channel)
}

// escapeQuery percent-encodes a query component. QueryEscape alone turns
// spaces into '+', which mailto bodies (RFC 6068) render literally.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SendEmail delivers the generated message through resend when the admin
// contacts the buyer by email instead of opening a mailto link.
func (s *service) SendEmail(ctx context.Context, req *domain.PurchaseRequest, to string) error {
	msg := s.BuildMessage(req, domain.ChannelEmail)
	if !msg.IsValid {
		return &domain.MessageTooLongError{
			Channel:   domain.ChannelEmail,
			Length:    msg.Length,
			MaxLength: msg.MaxLength,
		}
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pustaka Market <%s>", s.config.FromEmail),
		To:      []string{to},
		Text:    msg.Text,
		Subject: emailSubject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

// SendNotificationEmail delivers an already-composed status update, used by
// the notification subscriber for buyers reachable by email.
func (s *service) SendNotificationEmail(ctx context.Context, to, subject, text string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pustaka Market <%s>", s.config.FromEmail),
		To:      []string{to},
		Text:    text,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
