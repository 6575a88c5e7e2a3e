package intent

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

var (
	fromToPattern = regexp.MustCompile(`from\s+([a-z\s]+?)\s+to\s+([a-z\s]+?)(?:\s|$)`)
	leadingTo     = regexp.MustCompile(`^([a-z\s]+?)\s+to\s+([a-z\s]+?)(?:\s|$)`)
)

// Vocabulary is the ordered list of lower-case station names the pattern
// extractor recognises. Order matters: the first entry that contains, or is
// contained in, the extracted text wins.
var Vocabulary = []string{
	"central", "town hall", "wynyard", "circular quay", "chatswood", "parramatta",
	"strathfield", "north sydney", "bondi junction", "liverpool", "blacktown",
	"penrith", "hornsby", "hurstville", "bankstown", "epping", "castle hill",
	"rouse hill", "macquarie park", "st leonards", "redfern", "mascot",
	"wolli creek", "sutherland", "cronulla", "campbelltown", "burwood",
	"lidcombe", "auburn", "granville", "harris park", "westmead", "wentworthville",
	"toongabbie", "seven hills", "doonside", "rooty hill", "mount druitt", "st marys",
	"werrington", "kingswood", "emu plains", "newtown", "stanmore", "petersham",
	"lewisham", "summer hill", "ashfield", "homebush", "flemington", "olympic park",
	"kings cross", "martin place", "st james", "museum", "edgecliff", "bondi beach",
	"waverley", "milsons point", "waverton", "wollstonecraft", "artarmon",
	"roseville", "lindfield", "killara", "gordon", "pymble", "turramurra",
	"warrawee", "wahroonga", "berowra", "mount colah", "asquith", "beecroft",
	"cheltenham", "pennant hills", "thornleigh", "normanhurst", "waitara",
	"eastwood", "west ryde", "meadowbank", "rhodes", "concord west",
	"north strathfield", "macquarie university", "north ryde", "cherrybrook",
	"showground", "kellyville", "bella vista", "norwest", "tallawong",
	"arncliffe", "rockdale", "kogarah", "carlton", "allawah", "penshurst",
	"mortdale", "oatley", "como", "jannali", "gymea", "miranda", "caringbah",
	"woolooware", "yagoona", "birrong", "regents park", "berala", "sefton",
	"chester hill", "leightonfield", "villawood", "carramar", "cabramatta",
	"warwick farm", "casula", "glenfield", "macquarie fields", "ingleburn",
	"minto", "leumeah", "green square",
}

// PatternExtractor matches "from A to B" and "A to B" against a fixed
// station vocabulary. It never fails.
type PatternExtractor struct {
	vocabulary []string
	clock      clock.Clock
}

// NewPatternExtractor builds an extractor over Vocabulary.
func NewPatternExtractor(c clock.Clock) *PatternExtractor {
	return &PatternExtractor{
		vocabulary: Vocabulary,
		clock:      c,
	}
}

func (p *PatternExtractor) Extract(ctx context.Context, text string) (Intent, error) {
	return p.Parse(text), nil
}

// Parse runs the two patterns in priority order and resolves both sides.
func (p *PatternExtractor) Parse(text string) Intent {
	lower := strings.ToLower(text)

	var from, to string
	if m := fromToPattern.FindStringSubmatch(lower); m != nil {
		from, to = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	} else if m := leadingTo.FindStringSubmatch(lower); m != nil {
		from, to = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if from == "" || to == "" {
		log.Debug().Str("text", text).Msg("No journey pattern matched")
		return FollowUp(FormatQuestion)
	}

	fromStation, okFrom := p.match(from)
	toStation, okTo := p.match(to)
	if !okFrom || !okTo {
		log.Debug().Str("from", from).Str("to", to).Msg("Extracted stations not in vocabulary")
		return FollowUp(FormatQuestion)
	}

	// Casers hold state and are not shared between goroutines.
	title := cases.Title(language.English)
	return Intent{
		TripRequest: journey.TripRequest{
			Route: journey.Route{
				From: title.String(fromStation),
				To:   title.String(toStation),
				Mode: journey.ModeTrain,
			},
			Datetime: p.clock.Now(),
		},
		TimeDefaulted: true,
	}
}

// match is first-match-wins over the vocabulary with substring containment
// in either direction, so "central" also claims "central coast".
func (p *PatternExtractor) match(fragment string) (string, bool) {
	for _, station := range p.vocabulary {
		if strings.Contains(fragment, station) || strings.Contains(station, fragment) {
			return station, true
		}
	}
	return "", false
}
