package behavior

import (
	"math"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// FaceState describes how many faces the detector saw on a frame.
type FaceState string

const (
	StateNoFace     FaceState = "no-face"
	StateSingleFace FaceState = "single-face"
	StateMultiFace  FaceState = "multi-face"
)

const (
	// emaAlpha smooths the per-frame confidence signal.
	emaAlpha = 0.2

	// eyeContactThreshold is the maximum normalized head displacement
	// from frame center that still counts as looking at the camera.
	eyeContactThreshold = 0.25

	// movementThreshold is the frame-to-frame center delta above which
	// the head counts as having moved.
	movementThreshold = 0.05

	// eyeClosedThreshold is the openness ratio below which the eyes
	// count as closed. A blink is a run of at least minBlinkRun closed
	// frames followed by a re-open.
	eyeClosedThreshold = 0.2
	minBlinkRun        = 2

	// eyeOpenNorm is the openness ratio treated as fully open when
	// computing the confidence eye term.
	eyeOpenNorm = 0.3

	// maxDisplacement is the displacement treated as fully unstable
	// when computing the confidence stability term.
	maxDisplacement = 0.5

	// idealBlinkRate is blinks per 60 face frames considered relaxed.
	// Deviation in either direction reads as nervousness or staring.
	idealBlinkRate     = 15.0
	blinkPenaltyPerGap = 3.0
)

// Frame is one detector sample. Center coordinates are normalized to
// [0,1] frame space, BoxWidth to frame width, and EyeOpenness is the
// inter-eyelid distance divided by face height.
type Frame struct {
	Faces       int     `json:"faces"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	BoxWidth    float64 `json:"boxWidth"`
	EyeOpenness float64 `json:"eyeOpenness"`
}

// Report is the end-of-session aggregate. All fields except BlinkRate
// are percentages on a 0-100 scale.
type Report struct {
	EyeContact      float64 `json:"eyeContact"`
	Confidence      float64 `json:"confidence"`
	Engagement      float64 `json:"engagement"`
	Professionalism float64 `json:"professionalism"`
	Stability       float64 `json:"stability"`
	FacePresence    float64 `json:"facePresence"`
	BlinkRate       float64 `json:"blinkRate"`
	TotalFrames     int     `json:"totalFrames"`
	FaceFrames      int     `json:"faceFrames"`
	Blinks          int     `json:"blinks"`
}

// Analyzer accumulates per-frame signals across one session. It is not
// safe for concurrent use; each session gets its own instance.
type Analyzer struct {
	state FaceState

	totalFrames      int
	faceFrames       int
	eyeContactFrames int
	movementCount    int
	blinks           int

	closedRun int

	prevX, prevY float64
	hasPrev      bool

	smoothedConfidence float64
	hasConfidence      bool
}

// NewAnalyzer creates an analyzer with no accumulated state.
func NewAnalyzer() *Analyzer {
	return &Analyzer{state: StateNoFace}
}

// State returns the face-count warning state after the last frame.
func (a *Analyzer) State() FaceState {
	return a.state
}

// Observe consumes one frame. Scoring only accumulates while exactly
// one face is present; no-face and multi-face frames advance the frame
// counter and reset the movement and blink run tracking so signals do
// not bridge detection gaps.
func (a *Analyzer) Observe(f Frame) {
	a.totalFrames++

	switch {
	case f.Faces == 0:
		a.state = StateNoFace
	case f.Faces == 1:
		a.state = StateSingleFace
	default:
		a.state = StateMultiFace
	}

	if a.state != StateSingleFace {
		a.hasPrev = false
		a.closedRun = 0
		return
	}

	a.faceFrames++

	displacement := math.Hypot(f.CenterX-0.5, f.CenterY-0.5)
	if f.BoxWidth > 0 {
		displacement /= math.Max(f.BoxWidth, 1e-6) * 2
	}

	if displacement < eyeContactThreshold {
		a.eyeContactFrames++
	}

	if a.hasPrev {
		delta := math.Hypot(f.CenterX-a.prevX, f.CenterY-a.prevY)
		if delta > movementThreshold {
			a.movementCount++
		}
	}
	a.prevX, a.prevY = f.CenterX, f.CenterY
	a.hasPrev = true

	if f.EyeOpenness < eyeClosedThreshold {
		a.closedRun++
	} else {
		if a.closedRun >= minBlinkRun {
			a.blinks++
		}
		a.closedRun = 0
	}

	eyeTerm := clamp01(f.EyeOpenness / eyeOpenNorm)
	stabilityTerm := 1 - clamp01(displacement/maxDisplacement)
	frameConfidence := 0.4*eyeTerm + 0.6*stabilityTerm

	if !a.hasConfidence {
		a.smoothedConfidence = frameConfidence
		a.hasConfidence = true
	} else {
		a.smoothedConfidence = emaAlpha*frameConfidence + (1-emaAlpha)*a.smoothedConfidence
	}
}

// Report aggregates the session. It returns nil when no face was ever
// detected, since every ratio below divides by the face-frame count.
func (a *Analyzer) Report() *Report {
	if a.faceFrames == 0 {
		return nil
	}

	faceFrames := float64(a.faceFrames)

	eyeContact := float64(a.eyeContactFrames) / faceFrames * 100
	stability := 100 - math.Min(100, float64(a.movementCount)/faceFrames*100)
	facePresence := faceFrames / float64(a.totalFrames) * 100
	blinkRate := float64(a.blinks) / faceFrames * 60
	confidence := a.smoothedConfidence * 100

	blinkScore := math.Max(0, 100-math.Abs(blinkRate-idealBlinkRate)*blinkPenaltyPerGap)

	professionalism := 0.30*eyeContact +
		0.25*stability +
		0.20*confidence +
		0.15*facePresence +
		0.10*blinkScore

	engagement := (eyeContact + facePresence) / 2

	return &Report{
		EyeContact:      round1(eyeContact),
		Confidence:      round1(confidence),
		Engagement:      round1(engagement),
		Professionalism: round1(professionalism),
		Stability:       round1(stability),
		FacePresence:    round1(facePresence),
		BlinkRate:       round1(blinkRate),
		TotalFrames:     a.totalFrames,
		FaceFrames:      a.faceFrames,
		Blinks:          a.blinks,
	}
}

// Analyze runs a full frame sequence through a fresh analyzer.
func Analyze(frames []Frame) *Report {
	a := NewAnalyzer()
	for _, f := range frames {
		a.Observe(f)
	}
	return a.Report()
}

// ToMetrics converts a report into the shape stored on a session.
func (r *Report) ToMetrics() entities.BehavioralMetrics {
	return entities.BehavioralMetrics{
		EyeContact:      r.EyeContact,
		Confidence:      r.Confidence,
		Engagement:      r.Engagement,
		Professionalism: r.Professionalism,
		Stability:       r.Stability,
		FacePresence:    r.FacePresence,
		BlinkRate:       r.BlinkRate,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
