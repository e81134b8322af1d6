package interview

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func TestEnqueueEvaluation(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	session, _ := f.svc.CreateInterview(context.Background(), userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium, "")

	job, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "What is a mutex?", "A lock.")
	if err != nil {
		t.Fatalf("EnqueueEvaluation failed: %v", err)
	}
	if job.Status != entities.EvaluationJobStatusPending {
		t.Errorf("new job status = %s", job.Status)
	}

	pending, _ := f.jobs.CountByStatus(context.Background(), entities.EvaluationJobStatusPending)
	if pending != 1 {
		t.Errorf("pending jobs = %d", pending)
	}
}

func TestEnqueueEvaluation_Validation(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	session, _ := f.svc.CreateInterview(context.Background(), userID, "QA", entities.ModeHR, entities.DifficultyEasy, "")

	if _, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "", "answer"); err != entities.ErrInvalidRequest {
		t.Errorf("empty question: got %v", err)
	}
	if _, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 0, "q", "a"); err != entities.ErrQuestionOutOfRange {
		t.Errorf("question 0: got %v", err)
	}
	if _, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 11, "q", "a"); err != entities.ErrQuestionOutOfRange {
		t.Errorf("question beyond total: got %v", err)
	}
	if _, err := f.svc.EnqueueEvaluation(context.Background(), uuid.New(), session.ID, 1, "q", "a"); err != entities.ErrForbidden {
		t.Errorf("other user's session: got %v", err)
	}
}

func TestEnqueueEvaluation_FinalizedSession(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "a@b.c"})
	session, _ := f.svc.CreateInterview(context.Background(), userID, "QA", entities.ModeHR, entities.DifficultyEasy, "")

	if _, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "q", "a"); err != entities.ErrInterviewFinalized {
		t.Errorf("finalized session: got %v", err)
	}
}

func TestProcessJob(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	session, _ := f.svc.CreateInterview(context.Background(), userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium, "")

	f.gen.on("ideal_answer", "A mutex serializes access to shared state.")
	f.gen.on("evaluation", `{"correctness": 8, "depth": 6, "structure": 7, "feedback": "Good."}`)

	job, err := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "What is a mutex?", "A lock around shared data.")
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := f.svc.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}

	stored, _ := f.interviews.FindByID(context.Background(), session.ID)
	rec, ok := stored.Questions[1]
	if !ok {
		t.Fatal("question record not stored")
	}
	if rec.Correctness == nil || *rec.Correctness != 8 {
		t.Errorf("correctness = %v", rec.Correctness)
	}
	if rec.IdealAnswer == "" {
		t.Error("ideal answer missing")
	}
	if rec.EvaluatedAt == nil {
		t.Error("evaluated timestamp missing")
	}
	if stored.OverallCorrectness != 8 || stored.OverallDepth != 6 || stored.OverallStructure != 7 {
		t.Errorf("aggregates = %v/%v/%v", stored.OverallCorrectness, stored.OverallDepth, stored.OverallStructure)
	}
	// Provisional total is the plain verbal mean
	if stored.TotalScore != 7 {
		t.Errorf("provisional total = %v", stored.TotalScore)
	}
}

func TestProcessJob_ReevaluationOverwrites(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	session, _ := f.svc.CreateInterview(context.Background(), userID, "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium, "")

	f.gen.on("ideal_answer", "ideal")
	f.gen.on("evaluation",
		`{"correctness": 4, "depth": 4, "structure": 4, "feedback": "first try"}`,
		`{"correctness": 9, "depth": 9, "structure": 9, "feedback": "second try"}`,
	)

	first, _ := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 2, "q", "first answer")
	if err := f.svc.ProcessJob(context.Background(), first); err != nil {
		t.Fatalf("first job failed: %v", err)
	}
	second, _ := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 2, "q", "revised answer")
	if err := f.svc.ProcessJob(context.Background(), second); err != nil {
		t.Fatalf("second job failed: %v", err)
	}

	stored, _ := f.interviews.FindByID(context.Background(), session.ID)
	if len(stored.Questions) != 1 {
		t.Fatalf("expected one record for question 2, got %d", len(stored.Questions))
	}
	rec := stored.Questions[2]
	if *rec.Correctness != 9 || rec.Answer != "revised answer" {
		t.Errorf("re-evaluation did not overwrite: %v %q", *rec.Correctness, rec.Answer)
	}
}

func TestProcessJob_FinalizedSessionNotRetryable(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	f.users.Create(context.Background(), &entities.User{ID: userID, Email: "a@b.c"})
	session, _ := f.svc.CreateInterview(context.Background(), userID, "QA", entities.ModeHR, entities.DifficultyEasy, "")

	job, _ := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "q", "a")
	if _, err := f.svc.FinalizeInterview(context.Background(), userID, session.ID, nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	err := f.svc.ProcessJob(context.Background(), job)
	if err == nil {
		t.Fatal("late job against a finalized session must fail")
	}
	if !strings.HasPrefix(err.Error(), "invalid:") {
		t.Errorf("late job error should be non-retryable, got %q", err.Error())
	}
}

func TestProcessJob_UnparseableReplyKeepsFeedback(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	session, _ := f.svc.CreateInterview(context.Background(), userID, "QA", entities.ModeHR, entities.DifficultyEasy, "")

	f.gen.on("ideal_answer", "ideal")
	f.gen.on("evaluation", "I cannot produce JSON today.")

	job, _ := f.svc.EnqueueEvaluation(context.Background(), userID, session.ID, 1, "q", "a")
	if err := f.svc.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}

	stored, _ := f.interviews.FindByID(context.Background(), session.ID)
	rec := stored.Questions[1]
	if rec.Correctness != nil {
		t.Error("unparseable reply must leave scores nil")
	}
	if rec.Feedback != "I cannot produce JSON today." {
		t.Errorf("raw reply should survive as feedback, got %q", rec.Feedback)
	}
	// Nil-score records do not count toward aggregates
	if stored.OverallCorrectness != 0 || stored.TotalScore != 0 {
		t.Errorf("aggregates should stay zero, got %v/%v", stored.OverallCorrectness, stored.TotalScore)
	}
}
