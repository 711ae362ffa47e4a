package constants

// ItemType represents the kind of timeline item
type ItemType string

// NonStudyType tags a fixed non-study commitment
type NonStudyType string

// ContentType represents the kind of study content behind a plan block
type ContentType string

// ReorderMode selects the timeline reflow strategy
type ReorderMode string

// Severity grades a non-blocking advisory
type Severity string

const (
	AppName           = "studyflow"
	DefaultConfigPath = "~/.config/studyflow/studyflow.db"
	Version           = "v0.3.1"

	// Slot defaults
	DefaultSlotStart = "07:00"
	DefaultSlotEnd   = "22:00"
	DefaultBlockMin  = 30

	// MaxAdjustEndTime is the latest end time overlap adjustment may produce
	MaxAdjustEndTime = "23:59"

	// Timeline item types
	ItemTypePlan     ItemType = "plan"
	ItemTypeNonStudy ItemType = "non_study"
	ItemTypeEmpty    ItemType = "empty"

	// Non-study commitment types
	NonStudyMeal     NonStudyType = "meal"
	NonStudyAcademy  NonStudyType = "academy"
	NonStudyTravel   NonStudyType = "travel"
	NonStudyExercise NonStudyType = "exercise"
	NonStudyOther    NonStudyType = "other"

	// Content types
	ContentBook    ContentType = "book"
	ContentLecture ContentType = "lecture"
	ContentCustom  ContentType = "custom"

	// Reorder modes
	ModePush ReorderMode = "push"
	ModePull ReorderMode = "pull"

	// Advisory severities
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"

	// Advisory windows for non-study commitments. These are soft hints, not
	// hard constraints: placements outside them still stand.
	MealWindowStart    = "11:00"
	MealWindowEnd      = "14:00"
	AcademyWindowStart = "14:00"
	AcademyWindowEnd   = "22:00"
)
