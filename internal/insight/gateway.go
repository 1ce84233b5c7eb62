package insight

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// SummaryGateway serves the final summary for a webinar, generating one
// inline when none has been stored yet
type SummaryGateway struct {
	store      webinar.Store
	summarizer *Summarizer
}

// NewSummaryGateway creates a gateway over the given store and summarizer
func NewSummaryGateway(store webinar.Store, summarizer *Summarizer) *SummaryGateway {
	return &SummaryGateway{
		store:      store,
		summarizer: summarizer,
	}
}

// FinalSummary returns the most recent final summary, or generates and
// persists one when none exists.
//
// The miss path is not serialized per webinar: two concurrent calls that
// both observe "not found" will each generate and insert a record. Readers
// always take the newest final record, so the duplicates are equivalent.
func (g *SummaryGateway) FinalSummary(ctx context.Context, webinarID uuid.UUID) (*webinar.SummaryRecord, error) {
	record, err := g.store.LatestSummary(ctx, webinarID, webinar.SummaryFinal)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, webinar.ErrNotFound) {
		return nil, storeErr("final summary", err)
	}

	record, _, err = g.summarizer.GenerateSummary(ctx, webinarID, webinar.SummaryFinal)
	if err != nil {
		return nil, err
	}
	return record, nil
}
