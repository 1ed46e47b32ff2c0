package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{
			name:    "valid url",
			baseURL: "http://localhost:8000",
			wantErr: false,
		},
		{
			name:    "empty url uses default",
			baseURL: "",
			wantErr: false,
		},
		{
			name:    "missing scheme",
			baseURL: "localhost:8000",
			wantErr: true,
		},
		{
			name:    "garbage",
			baseURL: "://nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient(%q) error = %v, wantErr %v", tt.baseURL, err, tt.wantErr)
			}
		})
	}
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name     string
		response string
		status   int
		wantErr  bool
		validate func(t *testing.T, reply *Reply)
	}{
		{
			name:     "message field convention",
			response: `{"message": "Here are some phones", "products": []}`,
			status:   http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				if reply.Answer != "Here are some phones" {
					t.Errorf("expected answer from message field, got %q", reply.Answer)
				}
				if reply.AudioFile != "" {
					t.Errorf("expected no audio file, got %q", reply.AudioFile)
				}
			},
		},
		{
			name:     "answer field convention",
			response: `{"answer": "The Galaxy S23 costs $899"}`,
			status:   http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				if reply.Answer != "The Galaxy S23 costs $899" {
					t.Errorf("expected answer from answer field, got %q", reply.Answer)
				}
			},
		},
		{
			name:     "message wins over answer",
			response: `{"message": "primary", "answer": "secondary"}`,
			status:   http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				if reply.Answer != "primary" {
					t.Errorf("expected message to win, got %q", reply.Answer)
				}
			},
		},
		{
			name:     "audio reference",
			response: `{"message": "spoken too", "audio_file": "answer-42.mp3"}`,
			status:   http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				if reply.AudioFile != "answer-42.mp3" {
					t.Errorf("expected audio reference, got %q", reply.AudioFile)
				}
			},
		},
		{
			name: "product mapping with rating and thumbnails",
			response: `{
				"message": "One match",
				"products": [{
					"brand_name": "Samsung",
					"model": "Galaxy S23",
					"title": "Samsung Galaxy S23 128GB",
					"price": 899.99,
					"rating": 91,
					"specs_score": 80,
					"ram_capacity": 8,
					"imgs": {"thumbnails": ["t.jpg"], "previews": ["p.jpg"]},
					"image_url": "flat.jpg"
				}]
			}`,
			status: http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				if len(reply.Products) != 1 {
					t.Fatalf("expected 1 product, got %d", len(reply.Products))
				}
				p := reply.Products[0]
				if p.DisplayName != "Galaxy S23" {
					t.Errorf("expected model to win over title, got %q", p.DisplayName)
				}
				if p.QualityScore == nil || *p.QualityScore != 91 {
					t.Errorf("expected rating to win over specs_score, got %v", p.QualityScore)
				}
				if p.ImageSource() != "t.jpg" {
					t.Errorf("expected first thumbnail, got %q", p.ImageSource())
				}
			},
		},
		{
			name: "specs_score fallback and title fallback",
			response: `{
				"message": "One match",
				"products": [{
					"brand_name": "Nokia",
					"title": "Nokia G22",
					"price": 179,
					"specs_score": 64,
					"ram_capacity": "4/6"
				}]
			}`,
			status: http.StatusOK,
			validate: func(t *testing.T, reply *Reply) {
				p := reply.Products[0]
				if p.DisplayName != "Nokia G22" {
					t.Errorf("expected title fallback, got %q", p.DisplayName)
				}
				if p.QualityScore == nil || *p.QualityScore != 64 {
					t.Errorf("expected specs_score fallback, got %v", p.QualityScore)
				}
				if p.RAMCapacityGB.String() != "4/6" {
					t.Errorf("expected textual ram, got %q", p.RAMCapacityGB.String())
				}
			},
		},
		{
			name:     "server error",
			response: `internal error`,
			status:   http.StatusInternalServerError,
			wantErr:  true,
		},
		{
			name:     "malformed body",
			response: `{"message": `,
			status:   http.StatusOK,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/ask" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				var req askRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request body: %v", err)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.response)
			}))
			defer srv.Close()

			client, err := NewClient(srv.URL)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}

			reply, err := client.Ask(context.Background(), "what phones do you have?")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			tt.validate(t, reply)
		})
	}
}

func TestAskSendsQuestion(t *testing.T) {
	var received askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		io.WriteString(w, `{"message": "ok"}`)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)
	if _, err := client.Ask(context.Background(), "is the Pixel 8 in stock?"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if received.Question != "is the Pixel 8 in stock?" {
		t.Errorf("expected question to be forwarded verbatim, got %q", received.Question)
	}
}

func TestFetchAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/answer-7.mp3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)
	dir := t.TempDir()

	path, err := client.FetchAudio(context.Background(), "answer-7.mp3", dir)
	if err != nil {
		t.Fatalf("FetchAudio failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected clip in %s, got %s", dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read clip: %v", err)
	}
	if string(data) != "fake-mp3-bytes" {
		t.Errorf("clip content mismatch: %q", data)
	}

	if _, err := client.FetchAudio(context.Background(), "missing.mp3", dir); err == nil {
		t.Error("expected error for missing clip")
	}
}
