package notifier

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/MattVogelsang/IBM-DataAnalzing/internal/model"
)

// FormatRunSummary formats a pipeline run into a Telegram HTML message.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Stock dashboards</b> | %s\n\n", s.FinishedAt.Format("2006-01-02 15:04")))

	for _, t := range s.Tickers {
		b.WriteString(fmt.Sprintf("<b>%s</b> (%s)\n", html.EscapeString(t.Name), html.EscapeString(t.Symbol)))
		b.WriteString(fmt.Sprintf("  price: %s, %d rows, %d attempt(s)\n", t.PriceStatus, t.PriceRows, t.PriceAttempts))
		if t.RevenueStatus != "" {
			b.WriteString(fmt.Sprintf("  revenue: %s, %d rows\n", t.RevenueStatus, t.RevenueRows))
		}
		if t.DashboardPath != "" {
			b.WriteString(fmt.Sprintf("  dashboard: %s\n", html.EscapeString(filepath.Base(t.DashboardPath))))
		} else {
			b.WriteString("  dashboard: skipped\n")
		}
	}

	b.WriteString(fmt.Sprintf("\n%d/%d dashboards written to %s\n",
		s.Dashboards(), len(s.Tickers), html.EscapeString(s.OutputDir)))
	return b.String()
}
