package intent

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// FallbackExtractor tries the primary extractor and falls back to the
// secondary one on any error. Callers never see which ran.
type FallbackExtractor struct {
	primary   Extractor
	secondary Extractor
}

func NewFallbackExtractor(primary, secondary Extractor) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, secondary: secondary}
}

func (f *FallbackExtractor) Extract(ctx context.Context, text string) (Intent, error) {
	if f.primary != nil {
		in, err := f.primary.Extract(ctx, text)
		if err == nil {
			return in, nil
		}
		if errors.Is(err, ErrExtractorUnavailable) {
			log.Debug().Err(err).Msg("Primary intent extractor unavailable, using fallback")
		} else {
			log.Warn().Err(err).Msg("Primary intent extractor failed, using fallback")
		}
	}
	return f.secondary.Extract(ctx, text)
}
