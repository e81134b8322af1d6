package interview

import (
	"testing"
)

func TestParseEvaluation(t *testing.T) {
	p := NewParser()

	raw := "```json\n{\"correctness\": 8, \"depth\": 6.5, \"structure\": 7, \"feedback\": \"Solid answer.\"}\n```"
	res := p.ParseEvaluation(raw)
	if res.Correctness == nil || *res.Correctness != 8 {
		t.Errorf("correctness = %v", res.Correctness)
	}
	if res.Depth == nil || *res.Depth != 6.5 {
		t.Errorf("depth = %v", res.Depth)
	}
	if res.Structure == nil || *res.Structure != 7 {
		t.Errorf("structure = %v", res.Structure)
	}
	if res.Feedback != "Solid answer." {
		t.Errorf("feedback = %q", res.Feedback)
	}
}

func TestParseEvaluation_ClampsScores(t *testing.T) {
	p := NewParser()

	res := p.ParseEvaluation(`{"correctness": 14, "depth": -2, "structure": 10, "feedback": "x"}`)
	if *res.Correctness != 10 {
		t.Errorf("correctness should clamp to 10, got %v", *res.Correctness)
	}
	if *res.Depth != 0 {
		t.Errorf("depth should clamp to 0, got %v", *res.Depth)
	}
}

func TestParseEvaluation_KeepsRawOnGarbage(t *testing.T) {
	p := NewParser()

	raw := "The candidate did reasonably well overall."
	res := p.ParseEvaluation(raw)
	if res.Correctness != nil || res.Depth != nil || res.Structure != nil {
		t.Error("scores must stay nil when the reply is not JSON")
	}
	if res.Feedback != raw {
		t.Errorf("raw reply should survive as feedback, got %q", res.Feedback)
	}
}

func TestParseEvaluation_PartialScores(t *testing.T) {
	p := NewParser()

	res := p.ParseEvaluation(`{"correctness": 7, "feedback": "ok"}`)
	if res.Correctness == nil || *res.Correctness != 7 {
		t.Errorf("correctness = %v", res.Correctness)
	}
	if res.Depth != nil {
		t.Error("missing depth should stay nil")
	}
}

func TestParseFeedbackSummary(t *testing.T) {
	p := NewParser()

	raw := "```json\n" + `{
		"pros": ["Clear communication", "Good depth", "Structured answers", "Extra pro dropped"],
		"cons": ["Rushed at times", "Missed edge cases", "Vague on tradeoffs"],
		"improvementPlan": "Practice system design weekly."
	}` + "\n```"

	summary, err := p.ParseFeedbackSummary(raw)
	if err != nil {
		t.Fatalf("ParseFeedbackSummary failed: %v", err)
	}
	if len(summary.Pros) != 3 {
		t.Errorf("pros should be trimmed to 3, got %d", len(summary.Pros))
	}
	if len(summary.Cons) != 3 {
		t.Errorf("cons = %d", len(summary.Cons))
	}
	if summary.ImprovementPlan == "" {
		t.Error("improvement plan missing")
	}
}

func TestParseFeedbackSummary_Incomplete(t *testing.T) {
	p := NewParser()

	if _, err := p.ParseFeedbackSummary(`{"pros": ["a"], "cons": ["b", "c", "d"], "improvementPlan": "x"}`); err == nil {
		t.Error("too few pros must fail")
	}
	if _, err := p.ParseFeedbackSummary(`{"pros": ["a","b","c"], "cons": ["d","e","f"], "improvementPlan": ""}`); err == nil {
		t.Error("empty improvement plan must fail")
	}
	if _, err := p.ParseFeedbackSummary("not json at all"); err == nil {
		t.Error("garbage must fail")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := extractJSON(c.in); got != c.want {
			t.Errorf("extractJSON(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
