package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// Parser handles parsing of model responses. Models wrap JSON in markdown
// fences often enough that every parse goes through extractJSON first.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// EvaluationResult is the parsed scoring reply
type EvaluationResult struct {
	Correctness *float64
	Depth       *float64
	Structure   *float64
	Feedback    string
}

type evaluationJSON struct {
	Correctness *float64 `json:"correctness"`
	Depth       *float64 `json:"depth"`
	Structure   *float64 `json:"structure"`
	Feedback    string   `json:"feedback"`
}

// ParseEvaluation parses the scoring reply. It never fails: when the reply
// is not valid JSON the scores stay nil and the raw text is preserved as
// feedback, so the candidate still sees what the model said.
func (p *Parser) ParseEvaluation(raw string) *EvaluationResult {
	cleaned := extractJSON(raw)

	var parsed evaluationJSON
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return &EvaluationResult{Feedback: strings.TrimSpace(raw)}
	}

	return &EvaluationResult{
		Correctness: clampScore(parsed.Correctness),
		Depth:       clampScore(parsed.Depth),
		Structure:   clampScore(parsed.Structure),
		Feedback:    strings.TrimSpace(parsed.Feedback),
	}
}

// ParseFeedbackSummary parses the end-of-interview summary. The prompt
// demands exactly three pros and three cons; extra entries are dropped,
// missing ones fail the parse so the caller can skip the summary.
func (p *Parser) ParseFeedbackSummary(raw string) (*entities.FeedbackSummary, error) {
	cleaned := extractJSON(raw)

	var summary entities.FeedbackSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse feedback summary: %w", err)
	}

	if len(summary.Pros) < 3 || len(summary.Cons) < 3 || summary.ImprovementPlan == "" {
		return nil, fmt.Errorf("incomplete feedback summary: %d pros, %d cons", len(summary.Pros), len(summary.Cons))
	}
	summary.Pros = summary.Pros[:3]
	summary.Cons = summary.Cons[:3]

	return &summary, nil
}

func clampScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	s := *v
	if s < 0 {
		s = 0
	}
	if s > 10 {
		s = 10
	}
	return &s
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
