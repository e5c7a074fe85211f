package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown_Format(t *testing.T) {
	c := NewCountdown(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))

	assert.Equal(t, "5:00", c.Format(300, false))
	assert.Equal(t, "0:59", c.Format(59, true))
	assert.Equal(t, "0:00", c.Format(-3, true))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0\n")
	assert.Contains(t, buf.String(), "v0.1.0")
}

func TestHistoryMarkdown(t *testing.T) {
	assert.Contains(t, HistoryMarkdown(nil), "No sessions yet")

	sessions := []domain.SessionData{
		{ID: "a", ThemeName: "First", HRVStart: 80, HRVEnd: 60, GrowthValue: 70, DurationSeconds: 125},
		{ID: "b", ThemeName: "Second", HRVStart: 70, HRVEnd: 50, GrowthValue: 90,
			SelectedLensContent:   &domain.LensCard{Title: "Level Up"},
			SelectedActionContent: &domain.MicroAction{Title: "Drink Water"}},
	}
	md := HistoryMarkdown(sessions)
	assert.Less(t, strings.Index(md, "## Second"), strings.Index(md, "## First"))
	assert.Contains(t, md, "**2** sessions")
	assert.Contains(t, md, "Stress 80 → 60, growth 70")
	assert.Contains(t, md, "2:05")
	assert.Contains(t, md, "*Drink Water*")

	out, err := NewPlainRenderer()(md)
	require.NoError(t, err)
	assert.Contains(t, out, "Growth history")
}
