package interview

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func finalizedAt(f *serviceFixture, userID uuid.UUID, role string, mode entities.InterviewMode, diff entities.InterviewDifficulty, total float64, age time.Duration) {
	s := entities.NewInterviewSession(userID, role, mode, diff)
	s.CreatedAt = time.Now().Add(-age)
	s.TotalScore = total
	s.OverallCorrectness = total
	s.OverallDepth = total
	s.OverallStructure = total
	now := time.Now()
	s.FinalizedAt = &now
	f.interviews.Create(context.Background(), s)
}

func TestAnalytics_Empty(t *testing.T) {
	f := newServiceFixture()

	res, err := f.svc.Analytics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if res.TotalInterviews != 0 {
		t.Errorf("total = %d", res.TotalInterviews)
	}
	if res.SkillTrends == nil || res.RecentInterviews == nil {
		t.Error("slices must be non-nil so the payload serializes as [] not null")
	}
}

func TestAnalytics(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()

	finalizedAt(f, userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium, 6.0, 3*time.Hour)
	finalizedAt(f, userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyHard, 8.0, 2*time.Hour)
	finalizedAt(f, userID, "Backend Engineer", entities.ModeHR, entities.DifficultyMedium, 7.0, time.Hour)

	// Unfinalized sessions are invisible to analytics
	open, _ := f.svc.CreateInterview(context.Background(), userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyEasy, "")
	_ = open

	res, err := f.svc.Analytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}

	if res.TotalInterviews != 3 {
		t.Fatalf("total = %d, want 3", res.TotalInterviews)
	}
	// Session totals are 0-10, the dashboard shows percentages
	if res.RecentScore != 70 {
		t.Errorf("recent = %v, want 70", res.RecentScore)
	}
	if res.BestScore != 80 {
		t.Errorf("best = %v, want 80", res.BestScore)
	}
	if res.AverageScore != 70 {
		t.Errorf("average = %v, want 70", res.AverageScore)
	}

	if len(res.SkillTrends) != 3 {
		t.Fatalf("trend points = %d", len(res.SkillTrends))
	}
	// Trends run oldest first
	if !res.SkillTrends[0].Date.Before(res.SkillTrends[2].Date) {
		t.Error("trend should run oldest to newest")
	}
	if res.SkillTrends[0].Correctness != 60 {
		t.Errorf("oldest correctness = %v, want 60", res.SkillTrends[0].Correctness)
	}

	if len(res.ModeBreakdown) != 2 {
		t.Fatalf("mode breakdown = %v", res.ModeBreakdown)
	}
	for _, mc := range res.ModeBreakdown {
		switch mc.Mode {
		case entities.ModeTechnical:
			if mc.Count != 2 {
				t.Errorf("technical count = %d", mc.Count)
			}
		case entities.ModeHR:
			if mc.Count != 1 {
				t.Errorf("hr count = %d", mc.Count)
			}
		}
	}

	var medium *DifficultyPerformance
	for i := range res.PerformanceByDifficulty {
		if res.PerformanceByDifficulty[i].Difficulty == entities.DifficultyMedium {
			medium = &res.PerformanceByDifficulty[i]
		}
	}
	if medium == nil {
		t.Fatal("medium difficulty missing")
	}
	if medium.Count != 2 || medium.AverageScore != 65 {
		t.Errorf("medium = %+v, want count 2 avg 65", medium)
	}
}

func TestAnalytics_RecentCap(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()

	for i := 0; i < 8; i++ {
		finalizedAt(f, userID, "QA", entities.ModeTechnical, entities.DifficultyEasy, 5.0, time.Duration(i)*time.Hour)
	}

	res, err := f.svc.Analytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if len(res.RecentInterviews) != 5 {
		t.Errorf("recent rows = %d, want 5", len(res.RecentInterviews))
	}
	if len(res.SkillTrends) != 8 {
		t.Errorf("trend keeps every session, got %d", len(res.SkillTrends))
	}
}
