package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// InterviewMode selects which question track the session follows
type InterviewMode string

const (
	ModeTechnical InterviewMode = "Technical"
	ModeHR        InterviewMode = "HR"
)

// IsValid checks if the interview mode is valid
func (m InterviewMode) IsValid() bool {
	return m == ModeTechnical || m == ModeHR
}

// InterviewDifficulty controls question depth
type InterviewDifficulty string

const (
	DifficultyEasy   InterviewDifficulty = "Easy"
	DifficultyMedium InterviewDifficulty = "Medium"
	DifficultyHard   InterviewDifficulty = "Hard"
)

// IsValid checks if the difficulty is valid
func (d InterviewDifficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionRecord is one asked question with its answer and evaluation.
// Score fields are nil until the evaluator has run, and stay nil when the
// model reply could not be parsed.
type QuestionRecord struct {
	QuestionNumber int      `json:"questionNumber"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	IdealAnswer    string   `json:"idealAnswer,omitempty"`
	Correctness    *float64 `json:"correctness"`
	Depth          *float64 `json:"depth"`
	Structure      *float64 `json:"structure"`
	Feedback       string   `json:"feedback,omitempty"`
	EvaluatedAt    *time.Time `json:"evaluatedAt,omitempty"`
}

// QuestionMap stores question records keyed by 1-based question number so a
// re-evaluation of the same question overwrites in place instead of
// appending a duplicate.
type QuestionMap map[int]QuestionRecord

// FeedbackSummary is the AI-written wrap-up attached at finalization.
type FeedbackSummary struct {
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	ImprovementPlan string   `json:"improvementPlan"`
}

// BehavioralMetrics is the camera-derived score bundle, all on a 0 to 100
// scale.
type BehavioralMetrics struct {
	EyeContact      float64 `json:"eyeContact"`
	Confidence      float64 `json:"confidence"`
	Engagement      float64 `json:"engagement"`
	Professionalism float64 `json:"professionalism"`
	Stability       float64 `json:"stability"`
	FacePresence    float64 `json:"facePresence"`
	BlinkRate       float64 `json:"blinkRate"`
}

// InterviewSession represents one mock interview run
type InterviewSession struct {
	ID         uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;index"`
	Role       string              `json:"role" gorm:"type:varchar(255);not null"`
	Mode       InterviewMode       `json:"mode" gorm:"type:varchar(20);not null;default:'Technical'"`
	Difficulty InterviewDifficulty `json:"difficulty" gorm:"type:varchar(20);not null;default:'Medium'"`

	Questions QuestionMap `json:"questions" gorm:"type:jsonb;serializer:json"`

	// Verbal aggregates, 0 to 10, one decimal
	OverallCorrectness float64 `json:"overallCorrectness" gorm:"type:numeric(4,1);default:0"`
	OverallDepth       float64 `json:"overallDepth" gorm:"type:numeric(4,1);default:0"`
	OverallStructure   float64 `json:"overallStructure" gorm:"type:numeric(4,1);default:0"`

	// Behavioral aggregates, 0 to 100
	EyeContact      float64 `json:"eyeContact" gorm:"type:numeric(5,1);default:0"`
	Confidence      float64 `json:"confidence" gorm:"type:numeric(5,1);default:0"`
	Engagement      float64 `json:"engagement" gorm:"type:numeric(5,1);default:0"`
	Professionalism float64 `json:"professionalism" gorm:"type:numeric(5,1);default:0"`
	Stability       float64 `json:"stability" gorm:"type:numeric(5,1);default:0"`
	FacePresence    float64 `json:"facePresence" gorm:"type:numeric(5,1);default:0"`
	BlinkRate       float64 `json:"blinkRate" gorm:"type:numeric(5,1);default:0"`

	TotalScore      float64          `json:"totalScore" gorm:"type:numeric(4,1);default:0"`
	FeedbackSummary *FeedbackSummary `json:"feedbackSummary,omitempty" gorm:"type:jsonb;serializer:json"`

	ResumeContext string     `json:"-" gorm:"type:text"`
	FinalizedAt   *time.Time `json:"finalizedAt,omitempty" gorm:"type:timestamp;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewInterviewSession creates a session with an empty question map
func NewInterviewSession(userID uuid.UUID, role string, mode InterviewMode, difficulty InterviewDifficulty) *InterviewSession {
	now := time.Now()
	return &InterviewSession{
		ID:         uuid.New(),
		UserID:     userID,
		Role:       role,
		Mode:       mode,
		Difficulty: difficulty,
		Questions:  make(QuestionMap),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsFinalized reports whether the session has been closed out
func (s *InterviewSession) IsFinalized() bool {
	return s.FinalizedAt != nil
}

// UpsertQuestion stores a record under its question number, overwriting any
// earlier record for the same number.
func (s *InterviewSession) UpsertQuestion(rec QuestionRecord) {
	if s.Questions == nil {
		s.Questions = make(QuestionMap)
	}
	s.Questions[rec.QuestionNumber] = rec
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RecomputeVerbalAggregates averages the scored question records and refreshes
// the overall verbal fields plus the provisional total score. Records whose
// scores are nil (unevaluated or unparseable) are skipped.
func (s *InterviewSession) RecomputeVerbalAggregates() {
	var sumC, sumD, sumS float64
	var n int
	for _, rec := range s.Questions {
		if rec.Correctness == nil || rec.Depth == nil || rec.Structure == nil {
			continue
		}
		sumC += *rec.Correctness
		sumD += *rec.Depth
		sumS += *rec.Structure
		n++
	}
	if n == 0 {
		s.OverallCorrectness, s.OverallDepth, s.OverallStructure = 0, 0, 0
		s.TotalScore = 0
		return
	}
	s.OverallCorrectness = Round1(sumC / float64(n))
	s.OverallDepth = Round1(sumD / float64(n))
	s.OverallStructure = Round1(sumS / float64(n))
	// Provisional total until finalize blends in behavioral metrics
	s.TotalScore = Round1((s.OverallCorrectness + s.OverallDepth + s.OverallStructure) / 3)
}

// Finalize stores the behavioral bundle and computes the definitive total:
// 70% verbal (mean of correctness, depth, structure on 0-10) plus 30%
// behavioral (mean of eye contact, confidence, stability rescaled from
// 0-100 to 0-10).
func (s *InterviewSession) Finalize(b BehavioralMetrics, at time.Time) {
	s.RecomputeVerbalAggregates()

	s.EyeContact = b.EyeContact
	s.Confidence = b.Confidence
	s.Engagement = b.Engagement
	s.Professionalism = b.Professionalism
	s.Stability = b.Stability
	s.FacePresence = b.FacePresence
	s.BlinkRate = b.BlinkRate

	verbal := (s.OverallCorrectness + s.OverallDepth + s.OverallStructure) / 3
	behavioral := (b.EyeContact + b.Confidence + b.Stability) / 3 / 10

	s.TotalScore = Round1(verbal*0.7 + behavioral*0.3)
	if s.TotalScore < 0 {
		s.TotalScore = 0
	}
	if s.TotalScore > 10 {
		s.TotalScore = 10
	}
	s.FinalizedAt = &at
	s.UpdatedAt = at
}

// TableName specifies the table name for GORM
func (InterviewSession) TableName() string {
	return "interview_sessions"
}
