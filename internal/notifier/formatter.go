package notifier

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"StockDataset/internal/model"
)

// maxListedSkips bounds how many skipped file names a summary spells out.
const maxListedSkips = 10

// FormatRunSummary formats a finished build for a chat message.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📦 <b>Price dataset built</b> | %s\n\n", s.FinishedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Files: %d located, %d loaded, %d skipped\n", s.Files, s.Loaded, len(s.Skipped)))
	b.WriteString(fmt.Sprintf("Rows: %d | Symbols: %d\n", s.Rows, s.Symbols))
	b.WriteString(fmt.Sprintf("Securities: %d | Fundamentals: %d\n", s.Securities, s.Fundamentals))

	switch s.AdjustedSource {
	case "column":
		b.WriteString(fmt.Sprintf("Adjusted close: from %q\n", s.AdjustedColumn))
	case "close_copy":
		b.WriteString("⚠️ Adjusted close copied from Close (not split-adjusted)\n")
	default:
		b.WriteString("⚠️ Adjusted close unavailable\n")
	}
	if s.Enriched {
		b.WriteString("Company profiles: enriched\n")
	}

	if len(s.Skipped) > 0 {
		b.WriteString("\nSkipped:\n")
		for i, f := range s.Skipped {
			if i == maxListedSkips {
				b.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.Skipped)-maxListedSkips))
				break
			}
			b.WriteString(fmt.Sprintf("  %s\n", html.EscapeString(filepath.Base(f))))
		}
	}

	b.WriteString(fmt.Sprintf("\nRun: %s", s.RunID))
	return b.String()
}

// FormatFailure formats a build that stopped before writing output.
func FormatFailure(runID string, err error) string {
	return fmt.Sprintf("❌ <b>Price dataset build failed</b>\n\n%s\n\nRun: %s", html.EscapeString(err.Error()), runID)
}
