package models

// Settings represents application-wide settings
type Settings struct {
	SlotStart       string `json:"slot_start"`        // the time the study window opens, e.g. "07:00"
	SlotEnd         string `json:"slot_end"`          // the time the study window closes, e.g. "22:00"
	DefaultBlockMin int    `json:"default_block_min"` // the default study block duration in minutes
	MaxAdjustEnd    string `json:"max_adjust_end"`    // latest end time overlap adjustment may produce
	Timezone        string `json:"timezone"`          // IANA timezone name, or "Local" for the system timezone
}
