package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// AnalyticsResult is the dashboard payload over a user's finalized sessions.
// Scores are percentages (session totals are 0-10, shown as 0-100).
type AnalyticsResult struct {
	TotalInterviews         int                     `json:"totalInterviews"`
	AverageScore            float64                 `json:"averageScore"`
	BestScore               float64                 `json:"bestScore"`
	RecentScore             float64                 `json:"recentScore"`
	SkillTrends             []SkillTrendPoint       `json:"skillTrends"`
	PerformanceByDifficulty []DifficultyPerformance `json:"performanceByDifficulty"`
	ModeBreakdown           []ModeCount             `json:"modeBreakdown"`
	RecentInterviews        []RecentInterview       `json:"recentInterviews"`
}

// SkillTrendPoint is one finalized session's verbal axes, oldest first
type SkillTrendPoint struct {
	Date        time.Time `json:"date"`
	Correctness float64   `json:"correctness"`
	Depth       float64   `json:"depth"`
	Structure   float64   `json:"structure"`
}

// DifficultyPerformance is the average score at one difficulty
type DifficultyPerformance struct {
	Difficulty   entities.InterviewDifficulty `json:"difficulty"`
	Count        int                          `json:"count"`
	AverageScore float64                      `json:"averageScore"`
}

// ModeCount is how many sessions ran in each mode
type ModeCount struct {
	Mode  entities.InterviewMode `json:"mode"`
	Count int                    `json:"count"`
}

// RecentInterview is a dashboard row
type RecentInterview struct {
	ID         uuid.UUID                    `json:"id"`
	Role       string                       `json:"role"`
	Mode       entities.InterviewMode       `json:"mode"`
	Difficulty entities.InterviewDifficulty `json:"difficulty"`
	TotalScore float64                      `json:"totalScore"`
	Date       time.Time                    `json:"date"`
}

// Analytics aggregates the user's finalized sessions for the dashboard
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID) (*AnalyticsResult, error) {
	sessions, err := s.interviews.ListFinalizedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &AnalyticsResult{
		TotalInterviews:         len(sessions),
		SkillTrends:             make([]SkillTrendPoint, 0, len(sessions)),
		PerformanceByDifficulty: make([]DifficultyPerformance, 0, 3),
		ModeBreakdown:           make([]ModeCount, 0, 2),
		RecentInterviews:        make([]RecentInterview, 0, 5),
	}
	if len(sessions) == 0 {
		return result, nil
	}

	// sessions arrive newest first
	result.RecentScore = sessions[0].TotalScore * 10

	var sum float64
	diffSums := make(map[entities.InterviewDifficulty]*DifficultyPerformance)
	modeCounts := make(map[entities.InterviewMode]int)

	for _, sess := range sessions {
		pct := sess.TotalScore * 10
		sum += pct
		if pct > result.BestScore {
			result.BestScore = pct
		}

		dp, ok := diffSums[sess.Difficulty]
		if !ok {
			dp = &DifficultyPerformance{Difficulty: sess.Difficulty}
			diffSums[sess.Difficulty] = dp
		}
		dp.Count++
		dp.AverageScore += pct

		modeCounts[sess.Mode]++

		if len(result.RecentInterviews) < 5 {
			result.RecentInterviews = append(result.RecentInterviews, RecentInterview{
				ID:         sess.ID,
				Role:       sess.Role,
				Mode:       sess.Mode,
				Difficulty: sess.Difficulty,
				TotalScore: pct,
				Date:       sess.CreatedAt,
			})
		}
	}
	result.AverageScore = entities.Round1(sum / float64(len(sessions)))

	// Trend runs oldest first so charts read left to right
	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]
		result.SkillTrends = append(result.SkillTrends, SkillTrendPoint{
			Date:        sess.CreatedAt,
			Correctness: sess.OverallCorrectness * 10,
			Depth:       sess.OverallDepth * 10,
			Structure:   sess.OverallStructure * 10,
		})
	}

	for _, diff := range []entities.InterviewDifficulty{entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard} {
		if dp, ok := diffSums[diff]; ok {
			dp.AverageScore = entities.Round1(dp.AverageScore / float64(dp.Count))
			result.PerformanceByDifficulty = append(result.PerformanceByDifficulty, *dp)
		}
	}
	for _, mode := range []entities.InterviewMode{entities.ModeTechnical, entities.ModeHR} {
		if n, ok := modeCounts[mode]; ok {
			result.ModeBreakdown = append(result.ModeBreakdown, ModeCount{Mode: mode, Count: n})
		}
	}

	return result, nil
}
