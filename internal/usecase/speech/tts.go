package speech

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
)

const maxSynthesisChars = 1500

// SynthesisResult is playable audio for one question prompt
type SynthesisResult struct {
	Audio    []byte
	MimeType string
	Format   string
	Voice    string
	Model    string
}

// Synthesize turns question text into audio. Gemini answers with raw
// PCM chunks, which get a WAV container here so the browser can play
// the response directly from a blob URL.
func (s *Service) Synthesize(ctx context.Context, text, voice string) (*SynthesisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrInvalidArgument("text is required")
	}
	text = truncateRunes(text, maxSynthesisChars)

	// the gemini client counts the tts request itself
	speech, err := s.tts.Synthesize(ctx, text, voice)
	if err != nil {
		s.logger.Error("speech synthesis failed", zap.Error(err))
		return nil, apperrors.ErrAISynthesisFailed(err)
	}

	result := &SynthesisResult{
		Audio:    speech.Audio,
		MimeType: speech.MimeType,
		Format:   "raw",
		Voice:    speech.Voice,
		Model:    s.tts.Model(),
	}

	if isRawPCM(speech.MimeType) {
		cfg := parsePCMConfig(speech.MimeType)
		result.Audio = wrapPCMInWAV(speech.Audio, cfg)
		result.MimeType = "audio/wav"
		result.Format = "wav"
	}

	return result, nil
}

// truncateRunes cuts s to at most limit bytes without splitting a
// UTF-8 sequence.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
