package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"shopmate/catalog"
)

// Client talks to the shopping-assistant service. One request type: ask a
// question, get back an answer, an optional spoken-answer reference and an
// optional product list.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Reply is the normalized answer payload.
type Reply struct {
	Answer    string
	AudioFile string // empty when the service sent no spoken answer
	Products  []catalog.Product
}

type askRequest struct {
	Question string `json:"question"`
}

// askResponse covers both reply conventions the service has used over time:
// the answer text arrives as "message" or "answer", the quality score as
// "rating" or "specs_score". Both are accepted and normalized.
type askResponse struct {
	Message   string       `json:"message"`
	Answer    string       `json:"answer"`
	AudioFile *string      `json:"audio_file"`
	Products  []rawProduct `json:"products"`
}

type rawProduct struct {
	BrandName      string           `json:"brand_name"`
	Model          string           `json:"model"`
	Title          string           `json:"title"`
	Price          float64          `json:"price"`
	Rating         *float64         `json:"rating"`
	SpecsScore     *float64         `json:"specs_score"`
	ProcessorBrand string           `json:"processor_brand"`
	RAMCapacity    catalog.Flexible `json:"ram_capacity"`
	InternalMemory catalog.Flexible `json:"internal_memory"`
	ScreenSize     catalog.Flexible `json:"screen_size"`
	Has5G          *bool            `json:"has_5g"`
	HasNFC         *bool            `json:"has_nfc"`
	Imgs           rawImages        `json:"imgs"`
	ImageURL       string           `json:"image_url"`
}

type rawImages struct {
	Thumbnails []string `json:"thumbnails"`
	Previews   []string `json:"previews"`
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid assistant URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid assistant URL: %q", baseURL)
	}

	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// Ask sends one question and returns the normalized reply. A non-2xx status
// or an undecodable body is an error; callers surface all failures uniformly
// and never show raw transport detail to the user.
func (c *Client) Ask(ctx context.Context, question string) (*Reply, error) {
	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var decoded askResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode assistant reply: %w", err)
	}

	reply := &Reply{
		Answer: catalog.FirstNonEmpty(decoded.Message, decoded.Answer),
	}
	if decoded.AudioFile != nil {
		reply.AudioFile = *decoded.AudioFile
	}
	for _, raw := range decoded.Products {
		reply.Products = append(reply.Products, mapProduct(raw))
	}

	return reply, nil
}

// AudioURL derives the fetch URL for a spoken-answer reference.
func (c *Client) AudioURL(ref string) string {
	return c.baseURL + "/audio/" + url.PathEscape(ref)
}

// FetchAudio downloads a spoken-answer clip into dir and returns the local
// path, ready to hand to the playback arbiter.
func (c *Client) FetchAudio(ctx context.Context, ref, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AudioURL(ref), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build audio request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("audio fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("audio fetch returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create audio cache dir: %w", err)
	}

	// Keyed by the reference so repeated playback of the same answer reuses
	// the cached clip
	path := filepath.Join(dir, filepath.Base(ref))
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}

func mapProduct(raw rawProduct) catalog.Product {
	p := catalog.Product{
		BrandName:       raw.BrandName,
		DisplayName:     catalog.FirstNonEmpty(raw.Model, raw.Title),
		Price:           raw.Price,
		ProcessorBrand:  raw.ProcessorBrand,
		RAMCapacityGB:   raw.RAMCapacity,
		InternalStorage: raw.InternalMemory,
		ScreenSize:      raw.ScreenSize,
		Has5G:           raw.Has5G,
		HasNFC:          raw.HasNFC,
		Images: catalog.Images{
			Thumbnails: raw.Imgs.Thumbnails,
			Previews:   raw.Imgs.Previews,
		},
		ImageURL: raw.ImageURL,
	}

	// Two score conventions in the wild; rating wins when both are present
	if raw.Rating != nil {
		p.QualityScore = raw.Rating
	} else if raw.SpecsScore != nil {
		p.QualityScore = raw.SpecsScore
	}

	return p
}
