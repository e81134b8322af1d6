package interview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

func TestTopicFor(t *testing.T) {
	if got := topicFor(entities.ModeTechnical, 1); !strings.Contains(got, "warm-up") {
		t.Errorf("first technical topic = %q, want the warm-up", got)
	}
	if got := topicFor(entities.ModeHR, 1); !strings.Contains(got, "introduce") {
		t.Errorf("first hr topic = %q, want the introduction", got)
	}
	if topicFor(entities.ModeTechnical, 3) == topicFor(entities.ModeHR, 3) {
		t.Error("technical and hr tracks share a topic")
	}
}

func TestTopicFor_CyclesBeyondTable(t *testing.T) {
	for n := 1; n <= 20; n++ {
		if topicFor(entities.ModeTechnical, n) == "" {
			t.Fatalf("empty technical topic for question %d", n)
		}
		if topicFor(entities.ModeHR, n) == "" {
			t.Fatalf("empty hr topic for question %d", n)
		}
	}

	// after the table runs out, the cycle resumes at the second topic
	// so the warm-up is never repeated
	if got, want := topicFor(entities.ModeTechnical, 7), topicFor(entities.ModeTechnical, 2); got != want {
		t.Errorf("question 7 topic = %q, want %q", got, want)
	}
	warmUp := topicFor(entities.ModeTechnical, 1)
	for n := 7; n <= 20; n++ {
		if topicFor(entities.ModeTechnical, n) == warmUp {
			t.Errorf("question %d repeats the warm-up topic", n)
		}
	}
}

func TestBuildSummaryPrompt_IncludesEveryRecord(t *testing.T) {
	session := entities.NewInterviewSession(uuid.New(), "Backend Engineer", entities.ModeTechnical, entities.DifficultyMedium)
	for _, n := range []int{1, 3, 7, 10} {
		session.UpsertQuestion(entities.QuestionRecord{
			QuestionNumber: n,
			Question:       fmt.Sprintf("question %d", n),
			Answer:         fmt.Sprintf("answer %d", n),
		})
	}

	prompt := buildSummaryPrompt(session)
	for _, n := range []int{1, 3, 7, 10} {
		if !strings.Contains(prompt, fmt.Sprintf("Q%d: question %d", n, n)) {
			t.Errorf("summary prompt is missing question %d", n)
		}
	}
	if strings.Index(prompt, "Q1:") > strings.Index(prompt, "Q10:") {
		t.Error("summary prompt is not in question order")
	}
}
