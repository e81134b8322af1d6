package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"go.uber.org/zap"

	apperrors "github.com/prevue-ai/interview-server/errors"
	"github.com/prevue-ai/interview-server/pkg/metrics"
)

// Generator is the slice of the Gemini client role extraction needs
type Generator interface {
	Generate(ctx context.Context, kind, prompt string) (string, error)
	Configured() bool
}

const (
	defaultMaxSizeMB = 5
	// maxContextChars bounds the resume text carried into question
	// prompts so one long CV cannot crowd out the rest of the prompt.
	maxContextChars = 4000
)

var allowedResumeTypes = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/msword": ".doc",
	"text/plain":         ".txt",
}

// Service extracts a target role and interview context from an
// uploaded resume.
type Service struct {
	llm       Generator
	maxSizeMB int
	logger    *zap.Logger
}

// NewService creates a new resume service
func NewService(llm Generator, maxSizeMB int, logger *zap.Logger) *Service {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	return &Service{llm: llm, maxSizeMB: maxSizeMB, logger: logger}
}

// Extraction is the parsed resume analysis
type Extraction struct {
	Role      string `json:"role"`
	Seniority string `json:"seniority,omitempty"`
	Summary   string `json:"summary,omitempty"`
	// ResumeContext is the extracted text, trimmed for prompt reuse
	ResumeContext string `json:"resumeContext"`
}

// ExtractRole converts the uploaded file to text and asks the model
// which role the candidate should be interviewed for.
func (s *Service) ExtractRole(ctx context.Context, file io.Reader, size int64, contentType string) (*Extraction, error) {
	if size <= 0 || size > int64(s.maxSizeMB)<<20 {
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("resume must be between 1 byte and %dMB", s.maxSizeMB))
	}
	if _, ok := allowedResumeTypes[normalizeContentType(contentType)]; !ok {
		return nil, apperrors.ErrInvalidArgument("resume must be PDF, Word or plain text")
	}

	text, err := extractText(file, contentType)
	if err != nil {
		return nil, apperrors.ErrResumeParseFailed(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrResumeParseFailed(fmt.Errorf("no readable text in resume"))
	}
	text = truncateRunes(text, maxContextChars)

	out, err := s.llm.Generate(ctx, "resume", buildRoleExtractionPrompt(text))
	if err != nil {
		metrics.GeminiFailures.WithLabelValues("resume").Inc()
		return nil, apperrors.ErrAIGenerationFailed(err)
	}

	extraction, err := parseExtraction(out)
	if err != nil {
		s.logger.Warn("role extraction returned unparseable JSON", zap.Error(err))
		return nil, apperrors.ErrResumeParseFailed(err)
	}

	extraction.ResumeContext = text
	s.logger.Info("role extracted from resume", zap.String("role", extraction.Role))
	return extraction, nil
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

func extractText(file io.Reader, contentType string) (string, error) {
	if normalizeContentType(contentType) == "text/plain" {
		b, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	res, err := docconv.Convert(file, normalizeContentType(contentType), true)
	if err != nil {
		return "", fmt.Errorf("failed to convert resume: %w", err)
	}
	return res.Body, nil
}

func parseExtraction(raw string) (*Extraction, error) {
	var extraction Extraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	if strings.TrimSpace(extraction.Role) == "" {
		return nil, fmt.Errorf("extraction missing role")
	}
	return &extraction, nil
}

// extractJSON strips the markdown fences models wrap JSON in
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}

func normalizeContentType(ct string) string {
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
