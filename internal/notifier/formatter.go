package notifier

import (
	"fmt"
	"strings"

	"GoldSentinel/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// FormatDecision renders a decision as a single status line.
func FormatDecision(d *model.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %.2f CNY/g", d.Time.Format(timeLayout), d.Price)
	if d.Aux != "" {
		fmt.Fprintf(&b, " (%s)", d.Aux)
	}
	fmt.Fprintf(&b, " | regime=%s", d.Regime)
	if d.Snapshot.RSI14 != nil {
		fmt.Fprintf(&b, " rsi=%.1f", *d.Snapshot.RSI14)
	}
	fmt.Fprintf(&b, " | stop=%.2f tp1=%.2f tp2=%.2f", d.Levels.Stop, d.Levels.TakeProfit1, d.Levels.TakeProfit2)
	if d.PnL != nil {
		fmt.Fprintf(&b, " | pnl=%+.2f", *d.PnL)
	}
	fmt.Fprintf(&b, " | %s", d.Action.Advice())
	return b.String()
}

// FormatAlert renders a sell recommendation for the chat.
func FormatAlert(d *model.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 <b>%s</b>\n\n", d.Action.Advice())
	fmt.Fprintf(&b, "时间: %s\n", d.Time.Format(timeLayout))
	fmt.Fprintf(&b, "价格: %.2f CNY/g\n", d.Price)
	if d.Aux != "" {
		fmt.Fprintf(&b, "国际金价: %s\n", d.Aux)
	}
	fmt.Fprintf(&b, "行情: %s\n", d.Regime)
	fmt.Fprintf(&b, "已卖出档位: %d/2\n", d.SoldLevel)
	if d.PnL != nil {
		fmt.Fprintf(&b, "浮动盈亏: %+.2f CNY\n", *d.PnL)
	}
	return b.String()
}

// FormatLevels renders the exit thresholds and indicator snapshot.
func FormatLevels(d *model.Decision) string {
	var b strings.Builder
	b.WriteString("📐 <b>止盈止损位</b>\n\n")
	fmt.Fprintf(&b, "止损: %.2f\n", d.Levels.Stop)
	fmt.Fprintf(&b, "止盈1: %.2f\n", d.Levels.TakeProfit1)
	fmt.Fprintf(&b, "止盈2: %.2f\n", d.Levels.TakeProfit2)
	fmt.Fprintf(&b, "波动率: %.2f\n", d.Levels.Volatility)
	if d.Peak != nil {
		fmt.Fprintf(&b, "峰值: %.2f\n", *d.Peak)
	}

	s := d.Snapshot
	b.WriteString("\n")
	writeOptional(&b, "MA短", s.MAShort)
	writeOptional(&b, "MA长", s.MALong)
	writeOptional(&b, "RSI14", s.RSI14)
	writeOptional(&b, "Trend14", s.Trend14)
	if s.Bands != nil {
		fmt.Fprintf(&b, "布林带: %.2f / %.2f / %.2f\n", s.Bands.Lower, s.Bands.Mid, s.Bands.Upper)
	}
	return b.String()
}

func writeOptional(b *strings.Builder, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(b, "%s: n/a\n", label)
		return
	}
	fmt.Fprintf(b, "%s: %.2f\n", label, *v)
}
