package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/priority"
	"github.com/studyflowhq/studyflow/internal/reorder"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	planStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	nonStudyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderTimeline formats a day's timeline for terminal output.
func RenderTimeline(date string, items []models.TimelineItem) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Timeline for %s", date)))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(emptyStyle.Render("  (no items)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, item := range items {
		line := fmt.Sprintf("  %s - %s  %s", item.StartTime, item.EndTime, itemLabel(item))
		switch item.Type {
		case constants.ItemTypePlan:
			b.WriteString(planStyle.Render(line))
		case constants.ItemTypeNonStudy:
			b.WriteString(nonStudyStyle.Render(line))
		default:
			b.WriteString(emptyStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func itemLabel(item models.TimelineItem) string {
	switch item.Type {
	case constants.ItemTypePlan:
		if item.Title != "" {
			return item.Title
		}
		return "study block"
	case constants.ItemTypeNonStudy:
		if item.Title != "" {
			return item.Title
		}
		return string(item.NonStudyType)
	default:
		return "(free)"
	}
}

// RenderScores formats a ranked score table.
func RenderScores(ranked []priority.RankedContent) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Priority scores"))
	b.WriteString("\n")
	for i, r := range ranked {
		b.WriteString(fmt.Sprintf("  %2d. %-20s %-12s %6.2f\n", i+1, r.Content.Title, r.Content.Subject, r.Score))
	}
	return b.String()
}

// RenderAdvisories formats placement advisories with severity colors.
func RenderAdvisories(advisories []reorder.Advisory) string {
	var b strings.Builder
	for _, a := range advisories {
		line := fmt.Sprintf("  [%s] %s", a.Severity, a.Message)
		if a.Severity == constants.SeverityError || a.Severity == constants.SeverityWarning {
			b.WriteString(warnStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
