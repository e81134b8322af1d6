package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/infrastructure/external/gemini"
	"github.com/prevue-ai/interview-server/pkg/metrics"
)

// Generator is the slice of the Gemini client the correction pass needs
type Generator interface {
	Generate(ctx context.Context, kind, prompt string) (string, error)
	Configured() bool
}

// ObjectStore archives answer clips before they go to AssemblyAI
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

const (
	maxAudioSize  = 25 << 20
	pollMaxElapse = 2 * time.Minute
)

// Service handles speech-to-text and text-to-speech for the interview flow
type Service struct {
	asmClient *aai.Client
	tts       *gemini.TTSClient
	llm       Generator
	storage   ObjectStore
	logger    *zap.Logger
}

// NewService creates a new speech service
func NewService(asmClient *aai.Client, tts *gemini.TTSClient, llm Generator, storage ObjectStore, logger *zap.Logger) *Service {
	return &Service{
		asmClient: asmClient,
		tts:       tts,
		llm:       llm,
		storage:   storage,
		logger:    logger,
	}
}

// TranscribeInput is one uploaded answer clip. AssemblyAI ingests
// WebM/Opus directly so the clip is submitted without transcoding.
type TranscribeInput struct {
	Audio       io.Reader
	Size        int64
	ContentType string
	// Correct runs the transcript through a model cleanup pass that
	// fixes casing and obvious mis-hearings of technical terms.
	Correct bool
}

// TranscribeResult is the transcription response
type TranscribeResult struct {
	Text      string `json:"text"`
	Corrected bool   `json:"corrected"`
	ObjectKey string `json:"-"`
}

// Transcribe archives the clip, submits it to AssemblyAI and polls
// until the transcript completes.
func (s *Service) Transcribe(ctx context.Context, userID uuid.UUID, in TranscribeInput) (*TranscribeResult, error) {
	if in.Size <= 0 || in.Size > maxAudioSize {
		return nil, apperrors.ErrInvalidArgument("audio clip must be between 1 byte and 25MB")
	}

	objectKey := fmt.Sprintf("answers/%s/%s%s", userID, uuid.NewString(), extensionFor(in.ContentType))
	if err := s.storage.UploadFile(ctx, objectKey, in.Audio, in.Size, in.ContentType); err != nil {
		return nil, apperrors.ErrStorageFailed("upload answer clip", err)
	}

	// AssemblyAI fetches the clip itself, so hand it a presigned URL
	// instead of re-streaming the body through this process.
	audioURL, err := s.storage.GetFileURL(ctx, objectKey, time.Hour)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("presign answer clip", err)
	}

	transcript, err := s.asmClient.Transcripts.SubmitFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	})
	if err != nil {
		metrics.Transcriptions.WithLabelValues("submit_failed").Inc()
		return nil, apperrors.ErrAITranscriptionFailed(err)
	}

	transcriptID := ""
	if transcript.ID != nil {
		transcriptID = *transcript.ID
	}

	text, err := s.pollTranscript(ctx, transcriptID)
	if err != nil {
		metrics.Transcriptions.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.Transcriptions.WithLabelValues("completed").Inc()

	result := &TranscribeResult{Text: text, ObjectKey: objectKey}
	if in.Correct && strings.TrimSpace(text) != "" && s.llm.Configured() {
		if corrected, err := s.correctTranscript(ctx, text); err != nil {
			s.logger.Warn("transcript correction failed, returning raw transcript", zap.Error(err))
		} else {
			result.Text = corrected
			result.Corrected = true
		}
	}
	return result, nil
}

// pollTranscript polls AssemblyAI until the transcript leaves the
// queued/processing states.
func (s *Service) pollTranscript(ctx context.Context, transcriptID string) (string, error) {
	var text string

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = pollMaxElapse

	poll := func() error {
		transcript, err := s.asmClient.Transcripts.Get(ctx, transcriptID)
		if err != nil {
			return err
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			if transcript.Text != nil {
				text = *transcript.Text
			}
			return nil
		case aai.TranscriptStatusError:
			errorMsg := "transcription failed"
			if transcript.Error != nil {
				errorMsg = *transcript.Error
			}
			return backoff.Permanent(fmt.Errorf("assemblyai: %s", errorMsg))
		default:
			return fmt.Errorf("transcript %s still %s", transcriptID, transcript.Status)
		}
	}

	if err := backoff.Retry(poll, backoff.WithContext(bo, ctx)); err != nil {
		return "", apperrors.ErrAITranscriptionFailed(err)
	}
	return text, nil
}

func (s *Service) correctTranscript(ctx context.Context, raw string) (string, error) {
	out, err := s.llm.Generate(ctx, "transcript_correction", buildTranscriptCorrectionPrompt(raw))
	if err != nil {
		return "", err
	}
	corrected := strings.TrimSpace(out)
	if corrected == "" {
		return "", fmt.Errorf("correction pass returned empty text")
	}
	return corrected, nil
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "webm"):
		return ".webm"
	case strings.Contains(contentType, "ogg"):
		return ".ogg"
	case strings.Contains(contentType, "mp4"):
		return ".m4a"
	case strings.Contains(contentType, "mpeg"):
		return ".mp3"
	case strings.Contains(contentType, "wav"):
		return ".wav"
	default:
		return ".bin"
	}
}
