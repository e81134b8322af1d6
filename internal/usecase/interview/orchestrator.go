package interview

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
	apperrors "github.com/prevue-ai/interview-server/errors"
)

// maxGenerationAttempts bounds the regenerate-on-duplicate loop, first try
// included.
const maxGenerationAttempts = 3

// duplicateOverlapThreshold is the token overlap ratio at or above which two
// questions count as the same question.
const duplicateOverlapThreshold = 0.8

// NextQuestionInput carries one question turn. The orchestrator is
// stateless; the client sends the history it accumulated.
type NextQuestionInput struct {
	Role           string
	Mode           entities.InterviewMode
	Difficulty     entities.InterviewDifficulty
	QuestionNumber int
	History        []HistoryItem
	LastQuestion   string
	LastAnswer     string
	ResumeContext  string
}

// NextQuestion generates the next interview question. Candidates that repeat
// an earlier question are regenerated with an explicit do-not-repeat note;
// after the attempt budget is spent the last non-empty candidate wins, so
// the interview never stalls on a stubborn model.
func (s *Service) NextQuestion(ctx context.Context, in NextQuestionInput) (string, error) {
	if in.Role == "" || !in.Mode.IsValid() || !in.Difficulty.IsValid() {
		return "", entities.ErrInvalidRequest
	}

	qNum := in.QuestionNumber
	if qNum < 1 {
		qNum = 1
	}
	if qNum > s.cfg.TotalQuestions {
		qNum = s.cfg.TotalQuestions
	}

	asked := make([]string, 0, len(in.History))
	for _, h := range in.History {
		asked = append(asked, h.Question)
	}

	var lastCandidate string
	retryNote := ""
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		prompt := buildQuestionPrompt(in.Role, in.Mode, in.Difficulty, qNum, in.History, in.LastQuestion, in.LastAnswer, in.ResumeContext, retryNote)

		raw, err := s.llm.Generate(ctx, "question", prompt)
		if err != nil {
			if lastCandidate != "" {
				return lastCandidate, nil
			}
			return "", apperrors.ErrAIGenerationFailed(err)
		}

		candidate := strings.TrimSpace(raw)
		if candidate == "" {
			retryNote = "IMPORTANT: your previous output was empty. Produce one question."
			continue
		}
		lastCandidate = candidate

		if !isDuplicateQuestion(candidate, asked) {
			return candidate, nil
		}

		s.logger.Warn("generated question repeats an earlier one, retrying",
			zap.Int("question_number", qNum),
			zap.Int("attempt", attempt))
		retryNote = "IMPORTANT: your previous output repeated an earlier question. Ask about something clearly different."
	}

	if lastCandidate == "" {
		return "", apperrors.ErrAIGenerationFailed(nil)
	}
	// Exhausted retries; a repeated question beats no question.
	return lastCandidate, nil
}

// isDuplicateQuestion reports whether candidate matches any asked question,
// by normalized equality or token overlap.
func isDuplicateQuestion(candidate string, asked []string) bool {
	nc := normalizeQuestion(candidate)
	if nc == "" {
		return false
	}
	ctokens := tokenSet(nc)

	for _, q := range asked {
		nq := normalizeQuestion(q)
		if nq == "" {
			continue
		}
		if nq == nc {
			return true
		}
		if overlapRatio(ctokens, tokenSet(nq)) >= duplicateOverlapThreshold {
			return true
		}
	}
	return false
}

// normalizeQuestion lowercases, strips everything but letters and digits,
// and collapses whitespace.
func normalizeQuestion(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		set[tok] = struct{}{}
	}
	return set
}

// overlapRatio is |A n B| / max(|A|, |B|)
func overlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	var common int
	for tok := range small {
		if _, ok := large[tok]; ok {
			common++
		}
	}
	return float64(common) / float64(len(large))
}
