package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/internal/usecase/speech"
)

// Speech handles speech-to-text and text-to-speech HTTP requests
type Speech struct {
	service *speech.Service
	logger  *zap.Logger
}

// NewSpeech creates a new speech handler
func NewSpeech(service *speech.Service, logger *zap.Logger) *Speech {
	return &Speech{service: service, logger: logger}
}

// SpeechToText transcribes one uploaded answer clip
// POST /api/stt/speech-to-text
func (h *Speech) SpeechToText(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument("audio file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer file.Close()

	result, err := h.service.Transcribe(c.Request().Context(), userID, speech.TranscribeInput{
		Audio:       file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Correct:     c.FormValue("correct") == "true",
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, result)
}

// SynthesizeRequest is the text-to-speech request body
type SynthesizeRequest struct {
	Text  string `json:"text" validate:"required,max=1500"`
	Voice string `json:"voice,omitempty" validate:"omitempty,max=64"`
}

// Synthesize reads a question aloud. The response body is raw audio,
// with the synthesis parameters exposed as headers so the client can
// pick a decoder without parsing JSON.
// POST /api/tts/synthesize
func (h *Speech) Synthesize(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return handleError(c, h.logger, err)
	}

	var req SynthesizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	result, err := h.service.Synthesize(c.Request().Context(), req.Text, req.Voice)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	header := c.Response().Header()
	header.Set("X-TTS-Provider", "gemini")
	header.Set("X-TTS-Model", result.Model)
	header.Set("X-TTS-Voice", result.Voice)
	header.Set("X-TTS-Audio-Format", result.Format)
	header.Set("Cache-Control", "no-store")

	return c.Blob(http.StatusOK, result.MimeType, result.Audio)
}
