package storage

import "github.com/studyflowhq/studyflow/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Scheduled plans. DeletePlans soft-deletes a date's plans; RestorePlans
	// brings them back.
	SavePlans(date string, plans []models.ScheduledPlan) error
	GetPlans(date string) ([]models.ScheduledPlan, error)
	DeletePlans(date string) error
	RestorePlans(date string) error

	// Fixed commitments
	AddCommitment(models.ExistingPlanInfo) error
	GetCommitments(date string) ([]models.ExistingPlanInfo, error)
	GetAllCommitments() ([]models.ExistingPlanInfo, error)
	ClearCommitments(date string) error
}
