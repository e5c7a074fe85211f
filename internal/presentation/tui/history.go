package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/mindbuffer/pkg/archive"
	"github.com/aretw0/mindbuffer/pkg/domain"
)

// HistoryMarkdown renders archived sessions, newest first, as markdown.
func HistoryMarkdown(sessions []domain.SessionData) string {
	var b strings.Builder
	b.WriteString("# Growth history\n\n")
	if len(sessions) == 0 {
		b.WriteString("_No sessions yet._\n")
		return b.String()
	}

	sum := archive.Summarize(sessions)
	fmt.Fprintf(&b, "**%d** sessions, average growth **%.0f**, average stress drop **%.0f**.\n\n",
		sum.Count, sum.AverageGrowth, sum.AverageStressDrop)

	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		fmt.Fprintf(&b, "## %s\n\n", s.ThemeName)
		fmt.Fprintf(&b, "- %s, %d:%02d\n", time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04"), s.DurationSeconds/60, s.DurationSeconds%60)
		fmt.Fprintf(&b, "- Stress %d → %d, growth %d\n", s.HRVStart, s.HRVEnd, s.GrowthValue)
		if s.SelectedLensContent != nil {
			fmt.Fprintf(&b, "- Lens: *%s*\n", s.SelectedLensContent.Title)
		}
		if s.SelectedActionContent != nil {
			fmt.Fprintf(&b, "- Action: *%s*\n", s.SelectedActionContent.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}
