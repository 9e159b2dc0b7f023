package strategy

import (
	"time"

	"GoldSentinel/internal/calculator"
	"GoldSentinel/internal/model"
)

// TrendWeakeningRSI is the RSI ceiling below which a weakening trend
// triggers a partial exit.
const TrendWeakeningRSI = 35.0

// Config parameterises the decision engine for one position.
type Config struct {
	Grams       float64
	CostBasis   *float64
	NoTrade     Window
	Params      calculator.Params
	Multipliers Multipliers
}

// DefaultConfig returns a config with default indicator windows and
// multipliers and no cost basis.
func DefaultConfig(grams float64) Config {
	return Config{
		Grams:       grams,
		Params:      calculator.DefaultParams(),
		Multipliers: DefaultMultipliers(),
	}
}

// Engine is the sell-decision state machine for a single session.
// It is not safe for concurrent use.
type Engine struct {
	cfg   Config
	state model.DecisionState
}

// NewEngine creates an engine with nothing sold and no peak.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// State returns a copy of the current decision state.
func (e *Engine) State() model.DecisionState {
	s := e.state
	if s.Peak != nil {
		p := *s.Peak
		s.Peak = &p
	}
	return s
}

// Process evaluates the newest observation of history.
// It returns false, without touching state, when that observation's
// timestamp was already processed. An empty history yields a hold
// decision and no mutation.
func (e *Engine) Process(history model.PriceHistory) (*model.Decision, bool) {
	last, ok := history.Last()
	if !ok {
		return &model.Decision{
			Regime:    model.RegimeNeutral,
			Action:    model.ActionHold,
			SoldLevel: e.state.SoldLevel,
			Peak:      e.State().Peak,
		}, true
	}
	if !e.state.LastProcessed.IsZero() && last.Time.Equal(e.state.LastProcessed) {
		return nil, false
	}

	snap := calculator.Compute(history.Prices(), e.cfg.Params)
	regime := ClassifyRegime(snap)
	levels := ComputeLevels(last.Price, e.cfg.CostBasis, snap, e.cfg.Multipliers)
	action := e.Decide(last.Price, last.Time, regime, snap, levels)
	e.state.LastProcessed = last.Time

	d := &model.Decision{
		Time:      last.Time,
		Price:     last.Price,
		Aux:       last.Aux,
		Regime:    regime,
		Snapshot:  snap,
		Levels:    levels,
		Action:    action,
		SoldLevel: e.state.SoldLevel,
		Peak:      e.State().Peak,
	}
	if e.cfg.CostBasis != nil {
		pnl := (last.Price - *e.cfg.CostBasis) * e.cfg.Grams
		d.PnL = &pnl
	}
	return d, true
}

// Decide applies the exit rules to one tick and updates state.
// Rule order is fixed: stop-loss, take-profit-2, take-profit-1,
// trailing stop, trend weakening, hold. Once fully sold, only hold
// (or no-trade) is reported.
func (e *Engine) Decide(price float64, at time.Time, regime model.Regime, snap model.IndicatorSnapshot, levels model.LevelSet) model.Action {
	if e.state.Peak == nil || price > *e.state.Peak {
		p := price
		e.state.Peak = &p
	}

	if e.cfg.NoTrade.Contains(at) {
		return model.ActionNoTrade
	}
	if e.state.SoldLevel >= model.SoldAll {
		return model.ActionHold
	}

	switch {
	case price <= levels.Stop:
		e.state.SoldLevel = model.SoldAll
		return model.ActionStopLoss
	case price >= levels.TakeProfit2:
		e.state.SoldLevel = model.SoldAll
		return model.ActionTakeProfit2
	case e.state.SoldLevel < model.SoldHalf && price >= levels.TakeProfit1:
		e.state.SoldLevel = model.SoldHalf
		return model.ActionTakeProfit1
	case price <= *e.state.Peak-e.cfg.Multipliers.TrailingStop*levels.Volatility:
		e.state.SoldLevel = model.SoldAll
		return model.ActionTrailingStop
	case trendWeakening(regime, snap):
		if e.state.SoldLevel < model.SoldHalf {
			e.state.SoldLevel = model.SoldHalf
		}
		return model.ActionTrendWeakening
	}
	return model.ActionHold
}

func trendWeakening(regime model.Regime, snap model.IndicatorSnapshot) bool {
	if regime != model.RegimeTrend {
		return false
	}
	if snap.MAShort == nil || snap.MALong == nil || snap.RSI14 == nil {
		return false
	}
	return *snap.MAShort < *snap.MALong && *snap.RSI14 < TrendWeakeningRSI
}
