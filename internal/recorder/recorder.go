package recorder

import "GoldSentinel/internal/model"

// Recorder persists observations and decisions for later analysis.
// It is a journal only; the decision engine never reads it back.
type Recorder interface {
	RecordObservation(obs *model.PriceObservation) error
	RecordDecision(sessionID string, d *model.Decision) error
	Close() error
}
