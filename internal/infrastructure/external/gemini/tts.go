package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prevue-ai/interview-server/pkg/config"
	"github.com/prevue-ai/interview-server/pkg/metrics"
)

// TTSClient calls the Gemini speech model over its streaming REST endpoint.
// The SDK does not cover the TTS preview models, so this speaks the SSE wire
// format directly.
type TTSClient struct {
	apiKey  string
	baseURL string
	model   string
	voice   string
	client  *http.Client
}

// NewTTSClient creates a TTS client from config
func NewTTSClient(cfg *config.GeminiConfig) *TTSClient {
	return &TTSClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.TTSModel,
		voice:   cfg.TTSVoice,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Model returns the configured speech model name
func (t *TTSClient) Model() string { return t.model }

// DefaultVoice returns the configured fallback voice
func (t *TTSClient) DefaultVoice() string { return t.voice }

// SpeechResult is the assembled audio stream
type SpeechResult struct {
	Audio    []byte
	MimeType string // as reported by the API, e.g. audio/L16;codec=pcm;rate=24000
	Voice    string
}

type ttsRequest struct {
	Contents         []ttsContent        `json:"contents"`
	GenerationConfig ttsGenerationConfig `json:"generationConfig"`
}

type ttsContent struct {
	Parts []ttsPart `json:"parts"`
}

type ttsPart struct {
	Text string `json:"text"`
}

type ttsGenerationConfig struct {
	ResponseModalities []string        `json:"responseModalities"`
	SpeechConfig       ttsSpeechConfig `json:"speechConfig"`
}

type ttsSpeechConfig struct {
	VoiceConfig ttsVoiceConfig `json:"voiceConfig"`
}

type ttsVoiceConfig struct {
	PrebuiltVoiceConfig ttsPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type ttsPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type ttsChunk struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Synthesize streams speech for the given text and concatenates the audio
// chunks. An empty voice falls back to the configured default.
func (t *TTSClient) Synthesize(ctx context.Context, text, voice string) (*SpeechResult, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	if voice == "" {
		voice = t.voice
	}

	reqBody := ttsRequest{
		Contents: []ttsContent{{Parts: []ttsPart{{Text: text}}}},
		GenerationConfig: ttsGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: ttsSpeechConfig{
				VoiceConfig: ttsVoiceConfig{
					PrebuiltVoiceConfig: ttsPrebuiltVoice{VoiceName: voice},
				},
			},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", t.baseURL, t.model, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	metrics.GeminiRequests.WithLabelValues("tts").Inc()

	resp, err := t.client.Do(req)
	if err != nil {
		metrics.GeminiFailures.WithLabelValues("tts").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		metrics.GeminiFailures.WithLabelValues("tts").Inc()
		return nil, fmt.Errorf("gemini tts returned status %d", resp.StatusCode)
	}

	var audio bytes.Buffer
	var mimeType string

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk ttsChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // skip malformed keepalive frames
		}
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.InlineData == nil {
					continue
				}
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					continue
				}
				audio.Write(data)
				if mimeType == "" {
					mimeType = part.InlineData.MimeType
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		metrics.GeminiFailures.WithLabelValues("tts").Inc()
		return nil, fmt.Errorf("error reading tts stream: %w", err)
	}

	if audio.Len() == 0 {
		metrics.GeminiFailures.WithLabelValues("tts").Inc()
		return nil, fmt.Errorf("gemini tts returned no audio")
	}

	return &SpeechResult{
		Audio:    audio.Bytes(),
		MimeType: mimeType,
		Voice:    voice,
	}, nil
}
