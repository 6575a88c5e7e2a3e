// Package telegram answers trip questions sent to a Telegram bot webhook.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/intent"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

var apiBaseURL = "https://api.telegram.org"

// MaxListed caps the journeys in one reply.
const MaxListed = 3

const (
	noResultsText   = "❌ Sorry, I couldn't find any journey information for that route. Please check the station names and try again."
	errorText       = "❌ Sorry, there was an error processing your request. Please try again later."
	notUnderstood   = "🤔 I couldn't understand your request. Please specify the departure and arrival stations.\n\nExample: \"Next train from Central to Chatswood\""
	defaultFollowUp = "Could you please provide more details?"
)

// Update is the subset of a Telegram webhook update the bot reads.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64 `json:"message_id"`
	From      struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		Username  string `json:"username,omitempty"`
	} `json:"from"`
	Chat struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	} `json:"chat"`
	Text string `json:"text,omitempty"`
	Date int64  `json:"date"`
}

// Resolver plans trips for the bot.
type Resolver interface {
	Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error)
}

// Bot turns incoming messages into Markdown replies.
type Bot struct {
	httpClient *http.Client
	token      string
	extractor  intent.Extractor
	resolver   Resolver
	clock      clock.Clock
}

func NewBot(token string, extractor intent.Extractor, resolver Resolver, c clock.Clock) *Bot {
	return &Bot{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		extractor:  extractor,
		resolver:   resolver,
		clock:      c,
	}
}

// HandleUpdate answers one update. Updates without text are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, u Update) error {
	if u.Message == nil || u.Message.Text == "" {
		return nil
	}

	reply := b.Reply(ctx, u.Message.Text, u.Message.From.FirstName)
	return b.SendMessage(ctx, u.Message.Chat.ID, reply)
}

// Reply computes the Markdown answer for a message.
func (b *Bot) Reply(ctx context.Context, text, firstName string) string {
	if strings.TrimSpace(text) == "/start" {
		return welcome(firstName)
	}

	in, err := b.extractor.Extract(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("Telegram intent extraction failed")
		return errorText
	}

	if in.NeedsFollowUp {
		if in.FollowUpQuestion == "" {
			return defaultFollowUp
		}
		return in.FollowUpQuestion
	}

	if in.From == "" || in.To == "" {
		return notUnderstood
	}

	res, err := b.resolver.Resolve(ctx, in.TripRequest)
	if err != nil || res.Empty() {
		if err != nil {
			log.Warn().Err(err).Str("from", in.From).Str("to", in.To).Msg("Telegram journey lookup failed")
		}
		return noResultsText
	}

	return b.summary(in.Route, res)
}

func welcome(firstName string) string {
	return fmt.Sprintf("🚆 Welcome %s! I'm the NSW Train Assistant bot.\n\n", firstName) +
		"I can help you with:\n" +
		"• Train schedules and routes\n" +
		"• Real-time journey planning\n" +
		"• Service alerts\n\n" +
		"Just send me a message like:\n" +
		"\"Next train from Central to Parramatta\"\n" +
		"\"How do I get to Circular Quay?\""
}

func (b *Bot) summary(route journey.Route, res *journey.QueryResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚆 *%s - %s to %s*\n\n", strings.ToUpper(string(route.Mode)), route.From, route.To)

	for i, j := range res.Results {
		if i == MaxListed {
			break
		}
		fmt.Fprintf(&sb, "%d. *Departs:* %s - *Arrives:* %s\n", i+1, chat.FormatTime(j.DepartureTime), chat.FormatTime(j.ArrivalTime))
		fmt.Fprintf(&sb, "   Duration: %dmin | Changes: %d\n", j.DurationMinutes, j.ChangeCount)
		fmt.Fprintf(&sb, "   Platform: %s\n\n", chat.Platform(j))
	}

	fmt.Fprintf(&sb, "_Last updated: %s_", b.clock.Now().In(clock.Sydney).Format("3:04:05 pm"))
	return sb.String()
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage posts a Markdown message to a chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if b.token == "" {
		return errors.New("telegram bot token not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "Markdown"})
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", apiBaseURL, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}
