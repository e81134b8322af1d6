package interview

// CreateInterviewRequest starts a new interview session
type CreateInterviewRequest struct {
	Role          string `json:"role" validate:"required,min=2,max=255"`
	Mode          string `json:"mode" validate:"required,interview_mode"`
	Difficulty    string `json:"difficulty" validate:"required,interview_difficulty"`
	ResumeContext string `json:"resumeContext,omitempty" validate:"omitempty,max=4000"`
}

// HistoryItem is one already-answered question carried by the client
type HistoryItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NextQuestionRequest asks for the next interview question. The client
// carries the conversation so far; the server holds no draft state.
type NextQuestionRequest struct {
	InterviewID    string        `json:"interviewId" validate:"required,uuid"`
	QuestionNumber int           `json:"questionNumber" validate:"required,min=1"`
	History        []HistoryItem `json:"history,omitempty"`
	LastQuestion   string        `json:"lastQuestion,omitempty"`
	LastAnswer     string        `json:"lastAnswer,omitempty"`
}

// EvaluateRequest submits an answer for asynchronous scoring
type EvaluateRequest struct {
	InterviewID    string `json:"interviewId" validate:"required,uuid"`
	QuestionNumber int    `json:"questionNumber" validate:"required,min=1"`
	Question       string `json:"question" validate:"required"`
	Answer         string `json:"answer" validate:"required"`
}

// BehavioralScores is the camera-derived bundle, each axis 0-100.
// Missing fields default to zero.
type BehavioralScores struct {
	EyeContact      float64 `json:"eyeContact" validate:"min=0,max=100"`
	Confidence      float64 `json:"confidence" validate:"min=0,max=100"`
	Engagement      float64 `json:"engagement" validate:"min=0,max=100"`
	Professionalism float64 `json:"professionalism" validate:"min=0,max=100"`
	Stability       float64 `json:"stability" validate:"min=0,max=100"`
	FacePresence    float64 `json:"facePresence" validate:"min=0,max=100"`
	BlinkRate       float64 `json:"blinkRate" validate:"min=0"`
}

// FrameSample is one raw detector frame for server-side aggregation
type FrameSample struct {
	Faces       int     `json:"faces"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	BoxWidth    float64 `json:"boxWidth"`
	EyeOpenness float64 `json:"eyeOpenness"`
}

// FinalizeRequest closes an interview. Clients either send the
// aggregated behavioral bundle or the raw frame samples; frames win
// when both are present.
type FinalizeRequest struct {
	InterviewID string            `json:"interviewId" validate:"required,uuid"`
	Behavioral  *BehavioralScores `json:"behavioral,omitempty"`
	Frames      []FrameSample     `json:"frames,omitempty" validate:"omitempty,max=100000,dive"`
}
