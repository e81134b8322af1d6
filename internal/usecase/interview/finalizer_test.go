package interview

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func scoredSession(f *serviceFixture, userID uuid.UUID, correctness, depth, structure float64) *entities.InterviewSession {
	session, _ := f.svc.CreateInterview(context.Background(), userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium, "")
	session.UpsertQuestion(entities.QuestionRecord{
		QuestionNumber: 1,
		Question:       "q",
		Answer:         "a",
		Correctness:    &correctness,
		Depth:          &depth,
		Structure:      &structure,
	})
	f.interviews.Update(context.Background(), session)
	return session
}

func TestFinalizeInterview_BlendsScores(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})

	session := scoredSession(f, userID, 8, 6, 7)

	finalized, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, &entities.BehavioralMetrics{
		EyeContact: 80,
		Confidence: 70,
		Stability:  90,
	})
	if err != nil {
		t.Fatalf("FinalizeInterview failed: %v", err)
	}

	// verbal (8+6+7)/3 = 7.0, behavioral (80+70+90)/3/10 = 8.0
	// 7.0*0.7 + 8.0*0.3 = 7.3
	if finalized.TotalScore != 7.3 {
		t.Errorf("total = %v, want 7.3", finalized.TotalScore)
	}
	if !finalized.IsFinalized() {
		t.Error("session not marked finalized")
	}
	if finalized.EyeContact != 80 || finalized.Stability != 90 {
		t.Errorf("behavioral bundle not stored: %v/%v", finalized.EyeContact, finalized.Stability)
	}
}

func TestFinalizeInterview_NoBehavioralData(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})

	session := scoredSession(f, userID, 9, 9, 9)

	finalized, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil)
	if err != nil {
		t.Fatalf("FinalizeInterview failed: %v", err)
	}
	// Behavioral component scores zero: 9*0.7 = 6.3
	if finalized.TotalScore != 6.3 {
		t.Errorf("total = %v, want 6.3", finalized.TotalScore)
	}
}

func TestFinalizeInterview_Twice(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})
	session := scoredSession(f, userID, 5, 5, 5)

	if _, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil); err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}
	if _, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil); err != entities.ErrInterviewFinalized {
		t.Errorf("second finalize: got %v, want ErrInterviewFinalized", err)
	}
}

func TestFinalizeInterview_AttachesSummary(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})
	session := scoredSession(f, userID, 7, 7, 7)

	f.gen.on("summary", `{"pros":["a","b","c"],"cons":["d","e","f"],"improvementPlan":"practice"}`)

	finalized, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil)
	if err != nil {
		t.Fatalf("FinalizeInterview failed: %v", err)
	}
	if finalized.FeedbackSummary == nil {
		t.Fatal("summary not attached")
	}
	if finalized.FeedbackSummary.ImprovementPlan != "practice" {
		t.Errorf("plan = %q", finalized.FeedbackSummary.ImprovementPlan)
	}
}

func TestFinalizeInterview_SummaryFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})
	session := scoredSession(f, userID, 7, 7, 7)

	f.gen.on("summary", "no JSON here")

	finalized, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil)
	if err != nil {
		t.Fatalf("FinalizeInterview failed: %v", err)
	}
	if finalized.FeedbackSummary != nil {
		t.Error("unparseable summary should be dropped, not stored")
	}
	if !finalized.IsFinalized() {
		t.Error("session must still finalize")
	}
}

func TestFinalizeInterview_CompletesMatchingSchedule(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "cand@example.com"})

	sched := entities.NewHrSchedule(uuid.New(), "Cand", "cand@example.com", "Backend Engineer",
		entities.ModeTechnical, entities.DifficultyMedium, time.Now().Add(-time.Hour), "", "tok-1")
	f.schedules.Create(context.Background(), sched)

	// A schedule for a different role must stay open
	other := entities.NewHrSchedule(uuid.New(), "Cand", "cand@example.com", "Data Analyst",
		entities.ModeTechnical, entities.DifficultyMedium, time.Now().Add(-time.Hour), "", "tok-2")
	f.schedules.Create(context.Background(), other)

	session := scoredSession(f, userID, 6, 6, 6)
	if _, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil); err != nil {
		t.Fatalf("FinalizeInterview failed: %v", err)
	}

	got, _ := f.schedules.FindByID(context.Background(), sched.ID)
	if got.Status != entities.HrScheduleStatusCompleted {
		t.Errorf("matching schedule status = %s, want completed", got.Status)
	}
	gotOther, _ := f.schedules.FindByID(context.Background(), other.ID)
	if gotOther.Status != entities.HrScheduleStatusScheduled {
		t.Errorf("non-matching schedule status = %s, want scheduled", gotOther.Status)
	}
}

func TestRound1(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{7.25, 7.3},
		{7.24, 7.2},
		{0, 0},
		{9.999, 10},
	}
	for _, c := range cases {
		if got := entities.Round1(c.in); got != c.want {
			t.Errorf("Round1(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
