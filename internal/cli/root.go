package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/overlap"
	"github.com/studyflowhq/studyflow/internal/scheduler"
	"github.com/studyflowhq/studyflow/internal/storage"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// Context carries the shared collaborators every command runs against.
// DBPath is the resolved database location the Store was built from.
type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Validator *overlap.Validator
	DBPath    string
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ResolveDate turns "today" or a YYYY-MM-DD string into a concrete date
// using the configured timezone.
func ResolveDate(raw string, settings models.Settings) (string, error) {
	if raw == "today" || raw == "" {
		return timeutil.Today(settings.Timezone)
	}
	if _, err := time.Parse(constants.DateFormat, raw); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return raw, nil
}

// SlotFromSettings builds the day's slot boundary from settings.
func SlotFromSettings(settings models.Settings) models.TimeSlotBoundary {
	return models.TimeSlotBoundary{Start: settings.SlotStart, End: settings.SlotEnd}
}

// BuildTimeline merges plans and commitments into a display timeline using
// the configured slot boundary.
func (c *Context) BuildTimeline(plans []models.ScheduledPlan, commitments []models.ExistingPlanInfo, date string, settings models.Settings) ([]models.TimelineItem, error) {
	return scheduler.BuildTimeline(plans, commitments, date, SlotFromSettings(settings))
}
