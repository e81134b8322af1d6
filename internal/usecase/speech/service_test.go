package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubStore struct {
	uploadedKey  string
	uploadedSize int64
	contentType  string
}

func (s *stubStore) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	s.uploadedKey = objectName
	s.uploadedSize = size
	s.contentType = contentType
	_, err := io.Copy(io.Discard, reader)
	return err
}

func (s *stubStore) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.example.com/" + objectName, nil
}

type stubGenerator struct {
	reply      string
	err        error
	configured bool
	lastPrompt string
}

func (g *stubGenerator) Generate(ctx context.Context, kind, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *stubGenerator) Configured() bool { return g.configured }

// assemblyServer fakes the transcript API. Submit returns a queued
// transcript; each Get pops the next status from the script.
func assemblyServer(t *testing.T, statuses []map[string]interface{}) *httptest.Server {
	t.Helper()
	var gets int
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			var payload map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("invalid submit payload: %v", err)
			}
			if payload["audio_url"] == "" {
				t.Fatal("submit payload missing audio_url")
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "t-1", "status": "queued"})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/transcript/"):
			if gets >= len(statuses) {
				t.Fatalf("unexpected extra poll %d", gets+1)
			}
			json.NewEncoder(w).Encode(statuses[gets])
			gets++
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
}

func speechFixture(serverURL string, gen *stubGenerator) (*Service, *stubStore) {
	store := &stubStore{}
	client := aai.NewClientWithOptions(aai.WithBaseURL(serverURL), aai.WithAPIKey("test-key"))
	svc := NewService(client, nil, gen, store, zap.NewNop())
	return svc, store
}

func TestTranscribe(t *testing.T) {
	ts := assemblyServer(t, []map[string]interface{}{
		{"id": "t-1", "status": "completed", "text": "Tell me about indexes."},
	})
	defer ts.Close()

	svc, store := speechFixture(ts.URL, &stubGenerator{})
	audio := []byte("webm-bytes")

	result, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio:       bytes.NewReader(audio),
		Size:        int64(len(audio)),
		ContentType: "audio/webm",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "Tell me about indexes." {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if result.Corrected {
		t.Fatal("correction should not run when not requested")
	}
	if !strings.HasPrefix(store.uploadedKey, "answers/") || !strings.HasSuffix(store.uploadedKey, ".webm") {
		t.Fatalf("unexpected object key %q", store.uploadedKey)
	}
	if store.uploadedSize != int64(len(audio)) {
		t.Fatalf("uploaded size = %d, want %d", store.uploadedSize, len(audio))
	}
}

func TestTranscribe_ErrorStatusStopsPolling(t *testing.T) {
	ts := assemblyServer(t, []map[string]interface{}{
		{"id": "t-1", "status": "error", "error": "audio file is unreadable"},
	})
	defer ts.Close()

	svc, _ := speechFixture(ts.URL, &stubGenerator{})

	_, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio:       strings.NewReader("x"),
		Size:        1,
		ContentType: "audio/webm",
	})
	if err == nil {
		t.Fatal("expected error for failed transcript")
	}
	if !strings.Contains(err.Error(), "unreadable") {
		t.Fatalf("error should carry the upstream message, got %v", err)
	}
}

func TestTranscribe_CorrectionPass(t *testing.T) {
	ts := assemblyServer(t, []map[string]interface{}{
		{"id": "t-1", "status": "completed", "text": "tell me about sequel joins"},
	})
	defer ts.Close()

	gen := &stubGenerator{reply: "Tell me about SQL joins.", configured: true}
	svc, _ := speechFixture(ts.URL, gen)

	result, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio:       strings.NewReader("x"),
		Size:        1,
		ContentType: "audio/webm",
		Correct:     true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !result.Corrected {
		t.Fatal("expected corrected flag")
	}
	if result.Text != "Tell me about SQL joins." {
		t.Fatalf("unexpected corrected text %q", result.Text)
	}
	if !strings.Contains(gen.lastPrompt, "tell me about sequel joins") {
		t.Fatal("raw transcript should be embedded in the correction prompt")
	}
}

func TestTranscribe_CorrectionFailureReturnsRawText(t *testing.T) {
	ts := assemblyServer(t, []map[string]interface{}{
		{"id": "t-1", "status": "completed", "text": "raw transcript"},
	})
	defer ts.Close()

	gen := &stubGenerator{err: fmt.Errorf("quota exceeded"), configured: true}
	svc, _ := speechFixture(ts.URL, gen)

	result, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio:       strings.NewReader("x"),
		Size:        1,
		ContentType: "audio/webm",
		Correct:     true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Corrected {
		t.Fatal("failed correction must not set the corrected flag")
	}
	if result.Text != "raw transcript" {
		t.Fatalf("unexpected text %q", result.Text)
	}
}

func TestTranscribe_SizeLimits(t *testing.T) {
	svc, _ := speechFixture("http://127.0.0.1:0", &stubGenerator{})

	if _, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio: strings.NewReader(""), Size: 0, ContentType: "audio/webm",
	}); err == nil {
		t.Fatal("empty clip should be rejected")
	}
	if _, err := svc.Transcribe(context.Background(), uuid.New(), TranscribeInput{
		Audio: strings.NewReader("x"), Size: maxAudioSize + 1, ContentType: "audio/webm",
	}); err == nil {
		t.Fatal("oversized clip should be rejected")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"audio/webm;codecs=opus": ".webm",
		"audio/ogg":              ".ogg",
		"audio/mp4":              ".m4a",
		"audio/mpeg":             ".mp3",
		"audio/wav":              ".wav",
		"application/unknown":    ".bin",
	}
	for contentType, want := range cases {
		if got := extensionFor(contentType); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", contentType, got, want)
		}
	}
}
