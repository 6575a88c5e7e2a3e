// Package chat sequences intent extraction, trip resolution and rendering
// over one conversation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/favorites"
	"github.com/thesumanshah/tfnsw-assistant/pkg/intent"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/planner"
)

// Fixed assistant replies.
const (
	Greeting            = `Hello! I can help you with NSW train information. Ask me about schedules, routes, or stations. Try "Next train from Central to Parramatta" or "How do I get to Circular Quay?"`
	DefaultFollowUp     = "Could you please provide more details about your journey?"
	MissingStationsText = `I couldn't understand your request. Please specify the departure and arrival stations. For example: "Next train from Central to Chatswood"`
	NotUnderstoodText   = "Sorry, I'm having trouble understanding your request. Please try again."
	NoResultsText       = "Sorry, I couldn't find any journey information for that route. Please check the station names and try again."
	InvalidStationText  = "Sorry, I don't recognise one of those stations. Please check the station names and try again."
	UpstreamErrorText   = "Sorry, there was an error fetching journey information. Please try again later."
	MapText             = "Map view is coming soon! For now, you can use the Transport NSW website for maps."
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Action is a follow-up the user can trigger on a journey listing.
type Action string

const (
	ActionSwap  Action = "swap"
	ActionMap   Action = "map"
	ActionAlert Action = "alert"
)

// JourneyActions are attached to every listing with results.
var JourneyActions = []Action{ActionSwap, ActionMap, ActionAlert}

// Message is one entry of the conversation.
type Message struct {
	Role    Role                 `json:"role"`
	Content string               `json:"content"`
	Journey *journey.QueryResult `json:"journeyData,omitempty"`
	Actions []Action             `json:"actions,omitempty"`
}

// Resolver plans trips against the live trip planner.
type Resolver interface {
	Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error)
}

// OfflineResolver plans trips from canned schedules.
type OfflineResolver interface {
	Resolve(route journey.Route) *journey.QueryResult
}

// Session is one conversation. Its history is append-only. Submissions
// are expected one at a time: Busy reports an in-flight call but does not
// guard against a second one.
type Session struct {
	extractor intent.Extractor
	resolver  Resolver
	offline   OfflineResolver
	favorites *favorites.Set

	messages    []Message
	busy        bool
	offlineMode bool
}

// NewSession starts a conversation with the greeting. offline and favs may
// be nil, which disables offline mode and the alert action respectively.
func NewSession(extractor intent.Extractor, resolver Resolver, offline OfflineResolver, favs *favorites.Set) *Session {
	s := &Session{
		extractor: extractor,
		resolver:  resolver,
		offline:   offline,
		favorites: favs,
	}
	s.appendAssistant(Greeting, nil, nil)
	return s
}

// Messages returns a copy of the history.
func (s *Session) Messages() []Message {
	return slices.Clone(s.messages)
}

// Busy reports whether a submission is in flight.
func (s *Session) Busy() bool {
	return s.busy
}

// SetOffline switches searches to the canned schedules. It is ignored
// when the session has no offline resolver.
func (s *Session) SetOffline(offline bool) {
	s.offlineMode = offline && s.offline != nil
}

// Offline reports whether searches use the canned schedules.
func (s *Session) Offline() bool {
	return s.offlineMode
}

// Submit handles one line of user text and returns the assistant reply.
// Blank input is ignored and yields a zero Message.
func (s *Session) Submit(ctx context.Context, text string) Message {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}
	}

	s.busy = true
	defer func() { s.busy = false }()

	s.messages = append(s.messages, Message{Role: RoleUser, Content: text})

	in, err := s.extractor.Extract(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("Intent extraction failed")
		return s.appendAssistant(NotUnderstoodText, nil, nil)
	}

	if in.NeedsFollowUp {
		question := in.FollowUpQuestion
		if question == "" {
			question = DefaultFollowUp
		}
		return s.appendAssistant(question, nil, nil)
	}

	if in.From == "" || in.To == "" {
		return s.appendAssistant(MissingStationsText, nil, nil)
	}

	return s.search(ctx, in.TripRequest)
}

// Search resolves a structured route, bypassing intent extraction.
func (s *Session) Search(ctx context.Context, route journey.Route) Message {
	s.busy = true
	defer func() { s.busy = false }()

	return s.search(ctx, journey.TripRequest{Route: route})
}

func (s *Session) search(ctx context.Context, req journey.TripRequest) Message {
	if !req.Mode.Valid() {
		req.Mode = journey.ModeTrain
	}

	var (
		res *journey.QueryResult
		err error
	)
	if s.offlineMode {
		res = s.offline.Resolve(req.Route)
	} else {
		res, err = s.resolver.Resolve(ctx, req)
	}

	var invalid *planner.InvalidStationError
	switch {
	case errors.As(err, &invalid):
		log.Info().Str("station", invalid.Name).Msg("Unknown station requested")
		return s.appendAssistant(InvalidStationText, nil, nil)
	case err != nil:
		log.Error().Err(err).Str("from", req.From).Str("to", req.To).Msg("Journey search failed")
		return s.appendAssistant(UpstreamErrorText, nil, nil)
	case res.Empty():
		return s.appendAssistant(NoResultsText, nil, nil)
	}

	return s.appendAssistant(Summary(res), res, JourneyActions)
}

// RunAction performs a follow-up action for the route of a listing.
func (s *Session) RunAction(ctx context.Context, action Action, route journey.Route) Message {
	switch action {
	case ActionSwap:
		return s.Search(ctx, route.Reversed())
	case ActionMap:
		return s.appendAssistant(MapText, nil, nil)
	case ActionAlert:
		return s.toggleFavorite(ctx, route)
	}
	return s.appendAssistant(fmt.Sprintf("Unknown action %q.", action), nil, nil)
}

func (s *Session) toggleFavorite(ctx context.Context, route journey.Route) Message {
	if s.favorites == nil {
		return s.appendAssistant("Favorites are not available in this session.", nil, nil)
	}

	added, err := s.favorites.Toggle(ctx, route)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update favorites")
		return s.appendAssistant("Sorry, I couldn't update your favorites. Please try again.", nil, nil)
	}

	if added {
		return s.appendAssistant(fmt.Sprintf("Added %s → %s to your favorites! You'll be notified about delays on this route.", route.From, route.To), nil, nil)
	}
	return s.appendAssistant(fmt.Sprintf("Removed %s → %s from your favorites.", route.From, route.To), nil, nil)
}

func (s *Session) appendAssistant(content string, res *journey.QueryResult, actions []Action) Message {
	m := Message{Role: RoleAssistant, Content: content, Journey: res, Actions: slices.Clone(actions)}
	s.messages = append(s.messages, m)
	return m
}
