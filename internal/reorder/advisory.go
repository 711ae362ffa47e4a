package reorder

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// ValidateNonStudyTimeConstraints checks a non-study block against the
// customary time windows for its type. The checks are advisory only: a
// meal at 16:00 is unusual but valid, so the worst outcome is a warning
// for the caller to surface. An empty result means nothing to report.
func ValidateNonStudyTimeConstraints(nonStudyType constants.NonStudyType, start, end string) []Advisory {
	advisories := []Advisory{}

	startMin, err := timeutil.ParseTimeToMinutes(start)
	if err != nil {
		return append(advisories, Advisory{
			Severity: constants.SeverityError,
			Message:  fmt.Sprintf("start time %q is not a valid HH:MM time", start),
		})
	}
	endMin, err := timeutil.ParseTimeToMinutes(end)
	if err != nil {
		return append(advisories, Advisory{
			Severity: constants.SeverityError,
			Message:  fmt.Sprintf("end time %q is not a valid HH:MM time", end),
		})
	}
	if endMin <= startMin {
		return append(advisories, Advisory{
			Severity: constants.SeverityError,
			Message:  fmt.Sprintf("end time %s is not after start time %s", end, start),
		})
	}

	switch nonStudyType {
	case constants.NonStudyMeal:
		if outside(startMin, endMin, constants.MealWindowStart, constants.MealWindowEnd) {
			advisories = append(advisories, Advisory{
				Severity: constants.SeverityWarning,
				Message: fmt.Sprintf("meals usually fall between %s and %s",
					constants.MealWindowStart, constants.MealWindowEnd),
			})
		}
	case constants.NonStudyAcademy:
		if outside(startMin, endMin, constants.AcademyWindowStart, constants.AcademyWindowEnd) {
			advisories = append(advisories, Advisory{
				Severity: constants.SeverityWarning,
				Message: fmt.Sprintf("academy sessions usually fall between %s and %s",
					constants.AcademyWindowStart, constants.AcademyWindowEnd),
			})
		}
	}

	if endMin-startMin > 180 {
		advisories = append(advisories, Advisory{
			Severity: constants.SeverityInfo,
			Message:  fmt.Sprintf("non-study block runs %d minutes; consider splitting it", endMin-startMin),
		})
	}

	return advisories
}

// outside reports whether [startMin, endMin) escapes the advisory window.
func outside(startMin, endMin int, windowStart, windowEnd string) bool {
	winStart, err := timeutil.ParseTimeToMinutes(windowStart)
	if err != nil {
		return false
	}
	winEnd, err := timeutil.ParseTimeToMinutes(windowEnd)
	if err != nil {
		return false
	}
	return startMin < winStart || endMin > winEnd
}
