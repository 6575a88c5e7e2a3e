// Package intent turns free text into trip requests.
package intent

import (
	"context"
	"errors"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// FormatQuestion is asked when the text matches no known journey pattern.
const FormatQuestion = `Please specify your journey in the format: "from [station] to [station]". For example: "from Central to Parramatta"`

// ErrExtractorUnavailable wraps every failure of a hosted extractor. It is
// recovered by FallbackExtractor and never reaches the conversation.
var ErrExtractorUnavailable = errors.New("intent extractor unavailable")

// Intent is either a trip request or a clarifying question. TimeDefaulted
// is set when the text named no time and Datetime is the extraction time.
type Intent struct {
	journey.TripRequest
	NeedsFollowUp    bool   `json:"needsFollowUp"`
	FollowUpQuestion string `json:"followUpQuestion,omitempty"`
	TimeDefaulted    bool   `json:"timeDefaulted,omitempty"`
}

// FollowUp builds an intent that asks the user for more detail.
func FollowUp(question string) Intent {
	return Intent{NeedsFollowUp: true, FollowUpQuestion: question}
}

// Extractor parses one user message. Implementations that can fail return
// an error wrapping ErrExtractorUnavailable.
type Extractor interface {
	Extract(ctx context.Context, text string) (Intent, error)
}
