package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/migration"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on a fresh database
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			SlotStart:       constants.DefaultSlotStart,
			SlotEnd:         constants.DefaultSlotEnd,
			DefaultBlockMin: constants.DefaultBlockMin,
			MaxAdjustEnd:    constants.MaxAdjustEndTime,
			Timezone:        "Local",
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.newRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) newRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := s.newRunner()
	if err != nil {
		return err
	}
	applied, err := runner.Apply(func(msg string) {
		logger.Info(msg)
	})
	if err != nil {
		return err
	}
	if applied > 0 {
		logger.Info("Applied migrations", "count", applied)
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(
		"SELECT slot_start, slot_end, default_block_min, max_adjust_end, timezone FROM settings WHERE id = 1",
	).Scan(&settings.SlotStart, &settings.SlotEnd, &settings.DefaultBlockMin, &settings.MaxAdjustEnd, &settings.Timezone)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO settings (id, slot_start, slot_end, default_block_min, max_adjust_end, timezone)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		settings.SlotStart, settings.SlotEnd, settings.DefaultBlockMin, settings.MaxAdjustEnd, settings.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// SavePlans replaces the live plans for one date in a single transaction.
// Soft-deleted rows are left in place; saving a plan with DeletedAt set is
// an error, use DeletePlans and RestorePlans to manage deletion state.
func (s *SQLiteStore) SavePlans(date string, plans []models.ScheduledPlan) error {
	for _, p := range plans {
		if p.DeletedAt != nil {
			return fmt.Errorf("cannot save plan %s with deleted_at set; use DeletePlans to soft-delete or RestorePlans to restore", p.ID)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scheduled_plans WHERE plan_date = ? AND deleted_at IS NULL", date); err != nil {
		return fmt.Errorf("failed to clear plans for %s: %w", date, err)
	}

	for _, p := range plans {
		var startTime, endTime sql.NullString
		if p.StartTime != nil {
			startTime = sql.NullString{String: *p.StartTime, Valid: true}
		}
		if p.EndTime != nil {
			endTime = sql.NullString{String: *p.EndTime, Valid: true}
		}
		_, err := tx.Exec(
			`INSERT INTO scheduled_plans
			 (id, plan_date, block_index, content_type, content_id, subject,
			  planned_start_unit, planned_end_unit, is_reschedulable, start_time, end_time)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, date, p.BlockIndex, string(p.ContentType), p.ContentID, p.Subject,
			p.PlannedStartUnit, p.PlannedEndUnit, boolToInt(p.IsReschedulable), startTime, endTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert plan %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetPlans(date string) ([]models.ScheduledPlan, error) {
	rows, err := s.db.Query(
		`SELECT id, plan_date, block_index, content_type, content_id, subject,
		        planned_start_unit, planned_end_unit, is_reschedulable, start_time, end_time
		 FROM scheduled_plans
		 WHERE plan_date = ? AND deleted_at IS NULL
		 ORDER BY block_index`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.ScheduledPlan
	for rows.Next() {
		var p models.ScheduledPlan
		var contentType string
		var reschedulable int
		var startTime, endTime sql.NullString
		if err := rows.Scan(
			&p.ID, &p.PlanDate, &p.BlockIndex, &contentType, &p.ContentID, &p.Subject,
			&p.PlannedStartUnit, &p.PlannedEndUnit, &reschedulable, &startTime, &endTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		p.ContentType = constants.ContentType(contentType)
		p.IsReschedulable = reschedulable != 0
		if startTime.Valid {
			p.StartTime = &startTime.String
		}
		if endTime.Valid {
			p.EndTime = &endTime.String
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) DeletePlans(date string) error {
	// Soft delete: set deleted_at instead of removing the records
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		"UPDATE scheduled_plans SET deleted_at = ? WHERE plan_date = ? AND deleted_at IS NULL",
		now, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete plans for %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteStore) RestorePlans(date string) error {
	// Restore the date's soft-deleted plans by clearing deleted_at
	_, err := s.db.Exec(
		"UPDATE scheduled_plans SET deleted_at = NULL WHERE plan_date = ? AND deleted_at IS NOT NULL",
		date,
	)
	if err != nil {
		return fmt.Errorf("failed to restore plans for %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteStore) AddCommitment(c models.ExistingPlanInfo) error {
	_, err := s.db.Exec(
		"INSERT INTO commitments (date, start_time, end_time, source) VALUES (?, ?, ?, ?)",
		c.Date, c.StartTime, c.EndTime, c.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to add commitment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCommitments(date string) ([]models.ExistingPlanInfo, error) {
	return s.queryCommitments("SELECT date, start_time, end_time, source FROM commitments WHERE date = ? ORDER BY start_time", date)
}

func (s *SQLiteStore) GetAllCommitments() ([]models.ExistingPlanInfo, error) {
	return s.queryCommitments("SELECT date, start_time, end_time, source FROM commitments ORDER BY date, start_time")
}

func (s *SQLiteStore) queryCommitments(query string, args ...interface{}) ([]models.ExistingPlanInfo, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	defer rows.Close()

	var commitments []models.ExistingPlanInfo
	for rows.Next() {
		var c models.ExistingPlanInfo
		if err := rows.Scan(&c.Date, &c.StartTime, &c.EndTime, &c.Source); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

func (s *SQLiteStore) ClearCommitments(date string) error {
	_, err := s.db.Exec("DELETE FROM commitments WHERE date = ?", date)
	if err != nil {
		return fmt.Errorf("failed to clear commitments for %s: %w", date, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
