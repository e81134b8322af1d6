package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func TestNormalizeQuestion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"What is a goroutine?", "what is a goroutine"},
		{"  WHAT   is a GOROUTINE??  ", "what is a goroutine"},
		{"Explain REST vs. gRPC!", "explain rest vs grpc"},
		{"???", ""},
	}
	for _, c := range cases {
		if got := normalizeQuestion(c.in); got != c.want {
			t.Errorf("normalizeQuestion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsDuplicateQuestion(t *testing.T) {
	asked := []string{
		"What is database normalization?",
		"Explain the difference between TCP and UDP.",
	}

	// Same question with different punctuation and casing
	if !isDuplicateQuestion("what IS database normalization", asked) {
		t.Error("case and punctuation variants should match")
	}

	// High token overlap counts as duplicate even if not identical
	if !isDuplicateQuestion("Explain the difference between TCP and UDP protocols.", asked) {
		t.Error("near-identical question should match")
	}

	// A genuinely different question passes
	if isDuplicateQuestion("How does container orchestration work?", asked) {
		t.Error("unrelated question flagged as duplicate")
	}

	// Sharing a few common words is not enough
	if isDuplicateQuestion("What is the difference between a process and a thread?", asked) {
		t.Error("partial overlap below threshold flagged as duplicate")
	}

	if isDuplicateQuestion("Anything at all", nil) {
		t.Error("empty history can never match")
	}
}

func TestOverlapRatio(t *testing.T) {
	a := tokenSet("what is database normalization")
	b := tokenSet("what is database normalization exactly")
	if r := overlapRatio(a, b); r < 0.79 || r > 0.81 {
		t.Errorf("overlapRatio = %v, want 0.8", r)
	}
	if r := overlapRatio(a, a); r != 1.0 {
		t.Errorf("identical sets: got %v", r)
	}
	if r := overlapRatio(a, map[string]struct{}{}); r != 0 {
		t.Errorf("empty set: got %v", r)
	}
}

func TestNextQuestion(t *testing.T) {
	f := newServiceFixture()
	f.gen.on("question", "Describe how indexes speed up queries.")

	q, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Role:           "Data Analyst",
		Mode:           entities.ModeTechnical,
		Difficulty:     entities.DifficultyEasy,
		QuestionNumber: 2,
		History:        []HistoryItem{{Question: "What is normalization?", Answer: "Splitting tables."}},
	})
	if err != nil {
		t.Fatalf("NextQuestion failed: %v", err)
	}
	if q != "Describe how indexes speed up queries." {
		t.Errorf("unexpected question %q", q)
	}
	if n := f.gen.callCount("question"); n != 1 {
		t.Errorf("expected 1 generation call, got %d", n)
	}
}

func TestNextQuestion_RegeneratesOnDuplicate(t *testing.T) {
	f := newServiceFixture()
	f.gen.on("question",
		"What is normalization?",
		"What IS normalization??",
		"How would you design a star schema?",
	)

	q, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Role:           "Data Analyst",
		Mode:           entities.ModeTechnical,
		Difficulty:     entities.DifficultyEasy,
		QuestionNumber: 3,
		History:        []HistoryItem{{Question: "What is normalization?", Answer: "Splitting tables."}},
	})
	if err != nil {
		t.Fatalf("NextQuestion failed: %v", err)
	}
	if q != "How would you design a star schema?" {
		t.Errorf("expected the third candidate, got %q", q)
	}
	if n := f.gen.callCount("question"); n != 3 {
		t.Errorf("expected 3 generation calls, got %d", n)
	}
}

func TestNextQuestion_GivesUpAfterBudget(t *testing.T) {
	f := newServiceFixture()
	// Generator insists on the same repeated question every time
	f.gen.on("question", "What is normalization?")

	q, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Role:           "Data Analyst",
		Mode:           entities.ModeTechnical,
		Difficulty:     entities.DifficultyEasy,
		QuestionNumber: 4,
		History:        []HistoryItem{{Question: "What is normalization?", Answer: "Splitting tables."}},
	})
	if err != nil {
		t.Fatalf("NextQuestion should not fail on a stubborn model: %v", err)
	}
	if q != "What is normalization?" {
		t.Errorf("exhausted retries should return the last candidate, got %q", q)
	}
	if n := f.gen.callCount("question"); n != maxGenerationAttempts {
		t.Errorf("expected %d attempts, got %d", maxGenerationAttempts, n)
	}
}

func TestNextQuestion_GeneratorError(t *testing.T) {
	f := newServiceFixture()
	f.gen.errs["question"] = errors.New("model unavailable")

	_, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Role:       "Backend Engineer",
		Mode:       entities.ModeTechnical,
		Difficulty: entities.DifficultyMedium,
	})
	if err == nil {
		t.Fatal("expected an error when generation fails with no candidate")
	}
}

func TestNextQuestion_InvalidInput(t *testing.T) {
	f := newServiceFixture()

	if _, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Mode: entities.ModeTechnical, Difficulty: entities.DifficultyEasy,
	}); err != entities.ErrInvalidRequest {
		t.Errorf("missing role: got %v", err)
	}
	if _, err := f.svc.NextQuestion(context.Background(), NextQuestionInput{
		Role: "QA", Mode: "Casual", Difficulty: entities.DifficultyEasy,
	}); err != entities.ErrInvalidRequest {
		t.Errorf("bad mode: got %v", err)
	}
}
