package interview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// Topic focus in question order, warm-up first. Interviews configured
// longer than the table cycle through the post-warm-up topics again.
var technicalTopics = []string{
	"a warm-up question about the candidate's background and experience with the role",
	"core fundamentals and key concepts of the role's primary skill area",
	"an applied problem-solving scenario the candidate could face on the job",
	"system design, architecture, or how the candidate structures larger pieces of work",
	"debugging, trade-offs, or a hard technical decision from real experience",
	"engineering best practices, code quality, or collaboration in a team setting",
}

var hrTopics = []string{
	"a warm-up question inviting the candidate to introduce themselves",
	"the candidate's strengths, weaknesses, and self-awareness",
	"teamwork and handling disagreement or conflict with colleagues",
	"leadership, ownership, or taking initiative beyond the assigned scope",
	"dealing with failure, setbacks, or working under pressure",
	"career goals, motivation, and why this role and company",
}

// HistoryItem is one prior question/answer pair the client carries between
// turns.
type HistoryItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func topicFor(mode entities.InterviewMode, questionNumber int) string {
	topics := technicalTopics
	if mode == entities.ModeHR {
		topics = hrTopics
	}
	if questionNumber < 1 {
		questionNumber = 1
	}
	if questionNumber <= len(topics) {
		return topics[questionNumber-1]
	}
	return topics[(questionNumber-2)%(len(topics)-1)+1]
}

// buildQuestionPrompt assembles the generation prompt for one question turn.
// retryNote is appended on regeneration attempts after a duplicate was
// detected.
func buildQuestionPrompt(role string, mode entities.InterviewMode, difficulty entities.InterviewDifficulty, questionNumber int, history []HistoryItem, lastQuestion, lastAnswer, resumeContext, retryNote string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an experienced %s interviewer conducting a mock interview for the role of %s at %s difficulty.\n\n", mode, role, difficulty)
	fmt.Fprintf(&sb, "This is question %d of the interview. Focus on %s.\n\n", questionNumber, topicFor(mode, questionNumber))

	if resumeContext != "" {
		fmt.Fprintf(&sb, "Candidate resume context:\n%s\n\n", resumeContext)
	}

	sb.WriteString("Previous answers so far:\n")
	if len(history) == 0 {
		sb.WriteString("No previous answers.\n")
	} else {
		for i, h := range history {
			fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s\n", i+1, h.Question, i+1, h.Answer)
		}
	}
	sb.WriteString("\n")

	if questionNumber >= 3 && lastQuestion != "" && lastAnswer != "" {
		fmt.Fprintf(&sb, "The candidate's last question was: %q and their answer was: %q. If the answer leaves an obvious thread to pull, make this question a natural follow-up; otherwise move to the topic above.\n\n", lastQuestion, lastAnswer)
	}

	sb.WriteString("Rules:\n")
	sb.WriteString("- Ask exactly ONE question.\n")
	sb.WriteString("- Keep it conversational, as a human interviewer would phrase it.\n")
	sb.WriteString("- Maximum 50 words.\n")
	sb.WriteString("- Avoid generic phrasing and do not repeat any question already asked above.\n")
	sb.WriteString("- Return only the question text, no preamble or numbering.\n")

	if retryNote != "" {
		fmt.Fprintf(&sb, "\n%s\n", retryNote)
	}

	return sb.String()
}

// buildIdealAnswerPrompt is step one of an evaluation: a reference answer to
// score against.
func buildIdealAnswerPrompt(role string, mode entities.InterviewMode, difficulty entities.InterviewDifficulty, question string) string {
	return fmt.Sprintf(
		"You are an expert %s interviewer. For the role of %s at %s difficulty, write a concise ideal answer to the following interview question. Aim for the depth a strong candidate would show in two minutes of speaking. Return only the answer text.\n\nQuestion: %s",
		mode, role, difficulty, question)
}

// buildEvaluationPrompt is step two: score the candidate against the ideal.
func buildEvaluationPrompt(question, idealAnswer, candidateAnswer string) string {
	var sb strings.Builder
	sb.WriteString("You are scoring a mock interview answer. Compare the candidate's answer to the ideal answer and rate it.\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\nIdeal answer: %s\n\nCandidate answer: %s\n\n", question, idealAnswer, candidateAnswer)
	sb.WriteString("Return ONLY a JSON object with this exact shape and nothing else:\n")
	sb.WriteString(`{"correctness": <0-10>, "depth": <0-10>, "structure": <0-10>, "feedback": "<2-3 sentences of constructive feedback>"}`)
	return sb.String()
}

// buildSummaryPrompt produces the end-of-interview feedback summary request.
func buildSummaryPrompt(session *entities.InterviewSession) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Below is the full log of a %s mock interview for the role of %s (%s difficulty).\n\n", session.Mode, session.Role, session.Difficulty)

	numbers := make([]int, 0, len(session.Questions))
	for n := range session.Questions {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, i := range numbers {
		rec := session.Questions[i]
		fmt.Fprintf(&sb, "Q%d: %s\nAnswer: %s\n", i, rec.Question, rec.Answer)
		if rec.Correctness != nil && rec.Depth != nil && rec.Structure != nil {
			fmt.Fprintf(&sb, "Scores: correctness %.1f, depth %.1f, structure %.1f\n", *rec.Correctness, *rec.Depth, *rec.Structure)
		}
		if rec.Feedback != "" {
			fmt.Fprintf(&sb, "Feedback: %s\n", rec.Feedback)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Write an overall assessment. Return ONLY a JSON object with this exact shape:\n")
	sb.WriteString(`{"pros": ["<strength 1>", "<strength 2>", "<strength 3>"], "cons": ["<weakness 1>", "<weakness 2>", "<weakness 3>"], "improvementPlan": "<one actionable sentence>"}`)
	sb.WriteString("\nExactly three pros and exactly three cons.")
	return sb.String()
}
