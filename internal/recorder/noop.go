package recorder

import "GoldSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordObservation(_ *model.PriceObservation) error { return nil }
func (n *NoopRecorder) RecordDecision(_ string, _ *model.Decision) error  { return nil }
func (n *NoopRecorder) Close() error                                      { return nil }
