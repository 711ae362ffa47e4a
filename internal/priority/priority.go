package priority

import (
	"math"
	"sort"

	"github.com/studyflowhq/studyflow/internal/models"
)

// Input carries the per-subject signals a priority score is computed from.
// Optional signals are pointers; a nil signal is absent, not zero.
type Input struct {
	Subject          string
	Progress         float64 // 0-100, share of the content already completed
	Difficulty       string  // easy | medium | hard, anything else treated as medium
	RecentGrade      *float64
	RecentPercentile *float64
	RiskIndex        float64 // 0-100, externally computed academic-risk signal
	ExamUrgency      float64 // 0-100
	SemesterUrgency  float64 // 0-100
	HistoryRate      *float64
}

// Config holds the six component weights. A valid config sums to 100;
// ValidateConfig rescales one that does not.
type Config struct {
	RiskIndexWeight   float64 `yaml:"risk_index_weight" json:"risk_index_weight"`
	ScoreWeight       float64 `yaml:"score_weight" json:"score_weight"`
	ProgressWeight    float64 `yaml:"progress_weight" json:"progress_weight"`
	DifficultyWeight  float64 `yaml:"difficulty_weight" json:"difficulty_weight"`
	ExamUrgencyWeight float64 `yaml:"exam_urgency_weight" json:"exam_urgency_weight"`
	OtherWeight       float64 `yaml:"other_weight" json:"other_weight"`
}

// ConfigOverride is a partial config: nil fields fall back to the default.
type ConfigOverride struct {
	RiskIndexWeight   *float64 `yaml:"risk_index_weight" json:"risk_index_weight,omitempty"`
	ScoreWeight       *float64 `yaml:"score_weight" json:"score_weight,omitempty"`
	ProgressWeight    *float64 `yaml:"progress_weight" json:"progress_weight,omitempty"`
	DifficultyWeight  *float64 `yaml:"difficulty_weight" json:"difficulty_weight,omitempty"`
	ExamUrgencyWeight *float64 `yaml:"exam_urgency_weight" json:"exam_urgency_weight,omitempty"`
	OtherWeight       *float64 `yaml:"other_weight" json:"other_weight,omitempty"`
}

// DefaultConfig returns the standard component weights.
func DefaultConfig() Config {
	return Config{
		RiskIndexWeight:   35,
		ScoreWeight:       25,
		ProgressWeight:    15,
		DifficultyWeight:  10,
		ExamUrgencyWeight: 10,
		OtherWeight:       5,
	}
}

const weightSumTolerance = 1e-9

// ValidateConfig merges a partial override onto the defaults, then rescales
// all six weights proportionally so they sum to exactly 100. Validating an
// already-valid config returns it unchanged.
func ValidateConfig(override ConfigOverride) Config {
	cfg := DefaultConfig()
	if override.RiskIndexWeight != nil {
		cfg.RiskIndexWeight = *override.RiskIndexWeight
	}
	if override.ScoreWeight != nil {
		cfg.ScoreWeight = *override.ScoreWeight
	}
	if override.ProgressWeight != nil {
		cfg.ProgressWeight = *override.ProgressWeight
	}
	if override.DifficultyWeight != nil {
		cfg.DifficultyWeight = *override.DifficultyWeight
	}
	if override.ExamUrgencyWeight != nil {
		cfg.ExamUrgencyWeight = *override.ExamUrgencyWeight
	}
	if override.OtherWeight != nil {
		cfg.OtherWeight = *override.OtherWeight
	}
	return rescale(cfg)
}

func rescale(cfg Config) Config {
	sum := cfg.RiskIndexWeight + cfg.ScoreWeight + cfg.ProgressWeight +
		cfg.DifficultyWeight + cfg.ExamUrgencyWeight + cfg.OtherWeight
	if sum <= 0 {
		return DefaultConfig()
	}
	if math.Abs(sum-100) < weightSumTolerance {
		return cfg
	}
	factor := 100 / sum
	cfg.RiskIndexWeight *= factor
	cfg.ScoreWeight *= factor
	cfg.ProgressWeight *= factor
	cfg.DifficultyWeight *= factor
	cfg.ExamUrgencyWeight *= factor
	cfg.OtherWeight *= factor
	return cfg
}

// CalculateScore computes a single 0-100 priority score from the weighted
// sum of six normalized sub-scores. Each sub-score is already scaled to
// 0-100 before weighting. Out-of-range numeric inputs are the caller's
// responsibility; this function never errors.
func CalculateScore(input Input, cfg Config) float64 {
	score := input.RiskIndex * cfg.RiskIndexWeight / 100

	// Academic-score component: whichever of recent grade or percentile
	// signals the worst standing dominates. Grade 1 is best, 9 worst.
	academic := 0.0
	if input.RecentGrade != nil {
		academic = (*input.RecentGrade - 1) / 8 * 100
	}
	if input.RecentPercentile != nil {
		fromPercentile := 100 - *input.RecentPercentile
		if fromPercentile > academic {
			academic = fromPercentile
		}
	}
	score += academic * cfg.ScoreWeight / 100

	score += (100 - input.Progress) * cfg.ProgressWeight / 100

	score += difficultyScore(input.Difficulty) * cfg.DifficultyWeight / 100

	// Urgency: semester urgency rides the exam-urgency weight at half
	// strength as a second additive term, so the urgency dimension can
	// total up to 1.5x its nominal weight. Existing rankings depend on this.
	score += input.ExamUrgency * cfg.ExamUrgencyWeight / 100
	score += input.SemesterUrgency * 0.5 * cfg.ExamUrgencyWeight / 100

	// History contributes only when present: an absent rate adds nothing,
	// which is different from a rate of zero.
	if input.HistoryRate != nil {
		history := math.Min(100, *input.HistoryRate*10)
		score += history * cfg.OtherWeight / 100
	}

	return math.Max(0, math.Min(100, score))
}

// difficultyScore maps a difficulty tier to a 0-100 sub-score. Easier
// content scores higher so that clear quick wins surface first. Unknown
// tiers fall back to medium.
func difficultyScore(difficulty string) float64 {
	level := 2.0
	switch difficulty {
	case "easy":
		level = 1
	case "hard":
		level = 3
	case "medium":
		level = 2
	}
	return (3 - level) / 2 * 100
}

// InputFromContent builds a scoring input from a candidate content record.
func InputFromContent(c models.StudyContent) Input {
	return Input{
		Subject:          c.Subject,
		Progress:         c.Progress,
		Difficulty:       c.Difficulty,
		RecentGrade:      c.RecentGrade,
		RecentPercentile: c.RecentPercentile,
		RiskIndex:        c.RiskIndex,
		ExamUrgency:      c.ExamUrgency,
		SemesterUrgency:  c.SemesterUrgency,
		HistoryRate:      c.HistoryRate,
	}
}

// RankedContent pairs a candidate content with its computed score.
type RankedContent struct {
	Content models.StudyContent
	Score   float64
}

// Rank scores every candidate and returns them ordered by descending score.
// Ties break on subject, then ID, so identical inputs always produce the
// same ordering.
func Rank(contents []models.StudyContent, cfg Config) []RankedContent {
	ranked := make([]RankedContent, 0, len(contents))
	for _, c := range contents {
		ranked = append(ranked, RankedContent{
			Content: c,
			Score:   CalculateScore(InputFromContent(c), cfg),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Content.Subject != ranked[j].Content.Subject {
			return ranked[i].Content.Subject < ranked[j].Content.Subject
		}
		return ranked[i].Content.ID < ranked[j].Content.ID
	})
	return ranked
}
