package contact

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pustaka-market/internal/config"
	"pustaka-market/internal/domain"
)

func newTestRequest() *domain.PurchaseRequest {
	return &domain.PurchaseRequest{
		ID:        uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		UserID:    uuid.New(),
		ItemType:  domain.ItemBook,
		ItemTitle: "Clean Architecture",
		Amount:    25.5,
	}
}

func newTestService() Service {
	return NewService(&config.Config{FromEmail: "admin@pustaka.test"})
}

func TestBuildMessage_Format(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()

	msg := svc.BuildMessage(req, domain.ChannelTelegram)

	assert.True(t, msg.IsValid)
	assert.Contains(t, msg.Text, `Hi! Regarding your purchase request for the book: "Clean Architecture" ($25.50).`)
	assert.Contains(t, msg.Text, "Request ID: 0f8fad5b-d9cb-469f-a165-70867728950e")
	assert.NotContains(t, msg.Text, "Your message:")
	assert.Equal(t, len([]rune(msg.Text)), msg.Length)
	assert.Equal(t, 4096, msg.MaxLength)
}

func TestBuildMessage_IncludesBuyerMessage(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()
	userMessage := "Can I pay in two installments?"
	req.UserMessage = &userMessage

	msg := svc.BuildMessage(req, domain.ChannelEmail)

	assert.Contains(t, msg.Text, "Your message: Can I pay in two installments?")
}

func TestBuildMessage_TelegramLimit(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()

	// Pad the buyer message until the generated text is exactly at the
	// ceiling, then one character over it.
	base := svc.BuildMessage(req, domain.ChannelTelegram)
	padding := strings.Repeat("a", 4096-base.Length-len("\n\nYour message: "))
	req.UserMessage = &padding

	msg := svc.BuildMessage(req, domain.ChannelTelegram)
	require.Equal(t, 4096, msg.Length)
	assert.True(t, msg.IsValid)

	over := padding + "a"
	req.UserMessage = &over
	msg = svc.BuildMessage(req, domain.ChannelTelegram)
	require.Equal(t, 4097, msg.Length)
	assert.False(t, msg.IsValid)
}

func TestBuildLink_Schemes(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()

	email, err := svc.BuildLink(req, domain.ChannelEmail, "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(email, "mailto:buyer@example.com?"))
	assert.Contains(t, email, "subject=")
	assert.Contains(t, email, "body=")

	telegram, err := svc.BuildLink(req, domain.ChannelTelegram, "@bookworm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(telegram, "https://t.me/bookworm?text="))

	whatsapp, err := svc.BuildLink(req, domain.ChannelWhatsApp, "+628123456789")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(whatsapp, "https://wa.me/628123456789?text="))
}

func TestBuildLink_EncodesBody(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()
	req.ItemTitle = "C&C: Tips / Tricks?"

	link, err := svc.BuildLink(req, domain.ChannelTelegram, "bookworm")
	require.NoError(t, err)

	assert.NotContains(t, link, "C&C")
	assert.Contains(t, link, "C%26C")
}

// Mailto bodies must percent-encode spaces; a '+' arrives literally in most
// mail clients.
func TestBuildLink_SpacesArePercentEncoded(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()

	email, err := svc.BuildLink(req, domain.ChannelEmail, "buyer@example.com")
	require.NoError(t, err)
	assert.NotContains(t, email, "+")
	assert.Contains(t, email, "body=Hi%21%20Regarding%20your")
	assert.Contains(t, email, "subject=About%20your%20purchase%20request")

	telegram, err := svc.BuildLink(req, domain.ChannelTelegram, "bookworm")
	require.NoError(t, err)
	assert.NotContains(t, telegram, "+")
	assert.Contains(t, telegram, "%20")
}

func TestBuildLink_TooLongFails(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()
	padding := strings.Repeat("a", 5000)
	req.UserMessage = &padding

	_, err := svc.BuildLink(req, domain.ChannelTelegram, "bookworm")

	var tooLong *domain.MessageTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, domain.ChannelTelegram, tooLong.Channel)
	assert.Equal(t, 4096, tooLong.MaxLength)
	assert.Greater(t, tooLong.Length, tooLong.MaxLength)
}

func TestMaxLengthFor(t *testing.T) {
	assert.Equal(t, 4096, MaxLengthFor(domain.ChannelTelegram))
	assert.Greater(t, MaxLengthFor(domain.ChannelWhatsApp), MaxLengthFor(domain.ChannelTelegram))
	assert.Greater(t, MaxLengthFor(domain.ChannelEmail), MaxLengthFor(domain.ChannelTelegram))
}

func TestBuildMessage_AmountFormatting(t *testing.T) {
	svc := newTestService()
	req := newTestRequest()
	req.Amount = 1999

	msg := svc.BuildMessage(req, domain.ChannelEmail)
	assert.Contains(t, msg.Text, fmt.Sprintf("($%s)", "1999.00"))
}
