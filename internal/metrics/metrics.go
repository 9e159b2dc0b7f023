package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"GoldSentinel/internal/model"
)

var (
	Price = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goldsentinel_price_cny_per_gram",
		Help: "Latest observed gold price in CNY per gram.",
	})

	Peak = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goldsentinel_peak_cny_per_gram",
		Help: "Highest price observed in this session.",
	})

	SoldLevel = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goldsentinel_sold_level",
		Help: "Sell progress: 0 none, 1 half, 2 all.",
	})

	Levels = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "goldsentinel_level_cny_per_gram",
			Help: "Current stop and take-profit levels.",
		},
		[]string{"level"},
	)

	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldsentinel_actions_total",
			Help: "Decisions emitted, by action.",
		},
		[]string{"action"},
	)

	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldsentinel_fetch_errors_total",
			Help: "Failed price or rate fetches, by source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(Price, Peak, SoldLevel, Levels, Actions, FetchErrors)
}

// ObserveDecision publishes a processed decision.
func ObserveDecision(d *model.Decision) {
	Price.Set(d.Price)
	if d.Peak != nil {
		Peak.Set(*d.Peak)
	}
	SoldLevel.Set(float64(d.SoldLevel))
	Levels.WithLabelValues("stop").Set(d.Levels.Stop)
	Levels.WithLabelValues("take_profit_1").Set(d.Levels.TakeProfit1)
	Levels.WithLabelValues("take_profit_2").Set(d.Levels.TakeProfit2)
	Actions.WithLabelValues(string(d.Action)).Inc()
}
