// Package config loads scheduling inputs and weight overrides from YAML
// files. The engines themselves never read files; the CLI feeds them what
// this package parses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/priority"
)

// LoadWeights reads a partial weight override file and returns the merged,
// renormalized config. A missing path returns the defaults.
func LoadWeights(path string) (priority.Config, error) {
	if path == "" {
		return priority.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return priority.Config{}, fmt.Errorf("failed to read weights file: %w", err)
	}

	var override priority.ConfigOverride
	if err := yaml.Unmarshal(data, &override); err != nil {
		return priority.Config{}, fmt.Errorf("failed to parse weights file: %w", err)
	}

	return priority.ValidateConfig(override), nil
}

type contentEntry struct {
	ID               string   `yaml:"id"`
	ContentType      string   `yaml:"content_type"`
	Subject          string   `yaml:"subject"`
	Title            string   `yaml:"title"`
	DurationMin      int      `yaml:"duration_min"`
	Progress         float64  `yaml:"progress"`
	Difficulty       string   `yaml:"difficulty"`
	RecentGrade      *float64 `yaml:"recent_grade"`
	RecentPercentile *float64 `yaml:"recent_percentile"`
	RiskIndex        float64  `yaml:"risk_index"`
	ExamUrgency      float64  `yaml:"exam_urgency"`
	SemesterUrgency  float64  `yaml:"semester_urgency"`
	HistoryRate      *float64 `yaml:"history_rate"`
}

type contentFile struct {
	Contents []contentEntry `yaml:"contents"`
}

// LoadContents reads the candidate study contents for plan generation.
func LoadContents(path string) ([]models.StudyContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contents file: %w", err)
	}

	var file contentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse contents file: %w", err)
	}

	contents := make([]models.StudyContent, 0, len(file.Contents))
	for i, entry := range file.Contents {
		if entry.ID == "" {
			return nil, fmt.Errorf("contents[%d]: missing id", i)
		}
		contents = append(contents, models.StudyContent{
			ID:               entry.ID,
			ContentType:      contentType(entry.ContentType),
			Subject:          entry.Subject,
			Title:            entry.Title,
			DurationMin:      entry.DurationMin,
			Progress:         entry.Progress,
			Difficulty:       entry.Difficulty,
			RecentGrade:      entry.RecentGrade,
			RecentPercentile: entry.RecentPercentile,
			RiskIndex:        entry.RiskIndex,
			ExamUrgency:      entry.ExamUrgency,
			SemesterUrgency:  entry.SemesterUrgency,
			HistoryRate:      entry.HistoryRate,
		})
	}
	return contents, nil
}

type commitmentEntry struct {
	Date      string `yaml:"date"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
	Source    string `yaml:"source"`
}

type commitmentFile struct {
	Commitments []commitmentEntry `yaml:"commitments"`
}

// LoadCommitments reads the fixed external commitments scheduling must
// route around.
func LoadCommitments(path string) ([]models.ExistingPlanInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read commitments file: %w", err)
	}

	var file commitmentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse commitments file: %w", err)
	}

	commitments := make([]models.ExistingPlanInfo, 0, len(file.Commitments))
	for i, entry := range file.Commitments {
		if entry.Date == "" || entry.StartTime == "" || entry.EndTime == "" {
			return nil, fmt.Errorf("commitments[%d]: date, start_time, and end_time are required", i)
		}
		commitments = append(commitments, models.ExistingPlanInfo{
			Date:      entry.Date,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Source:    entry.Source,
		})
	}
	return commitments, nil
}

func contentType(raw string) constants.ContentType {
	switch constants.ContentType(raw) {
	case constants.ContentBook, constants.ContentLecture, constants.ContentCustom:
		return constants.ContentType(raw)
	default:
		return constants.ContentCustom
	}
}
