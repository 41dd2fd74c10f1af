package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"versegen/internal/domain"
	"versegen/internal/infra"
)

// KeySource supplies the provider API key when the environment does not.
// The credentials store satisfies this.
type KeySource interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     *infra.Logger
	Keys       KeySource
	Retry      RetryPolicy
}

// Client talks to the Gemini API: generateContent for text and vision,
// the Imagen predict endpoint for image generation. Every call goes
// through the shared retry policy.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
	logger     zerolog.Logger
	keys       KeySource
	retry      RetryPolicy
}

const genaiDefaultTimeout = 60 * time.Second

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type imagenPredictRequest struct {
	Instances  imagenInstance   `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type imagenPredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may
// provide a nil HTTP client; a reusable one with a conservative timeout is
// created.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: genaiDefaultTimeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = "gemini-2.5-flash-preview-09-2025"
	}

	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "imagen-3.0-generate-002"
	}

	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	retry := opts.Retry
	if retry.MaxAttempts == 0 && retry.BaseDelay == 0 {
		retry = DefaultRetryPolicy()
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: client,
		logger:     logger,
		keys:       opts.Keys,
		retry:      retry,
	}
}

// GenerateText sends the prompt with an optional system-level instruction
// and returns the first candidate's text.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	payload := geminiGenerateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
	}
	if system != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	return c.generateContent(ctx, payload)
}

// AnalyzeImage submits the prompt together with inline image bytes as a
// single multi-part request.
func (c *Client) AnalyzeImage(ctx context.Context, system, prompt, imageB64, mimeType string) (string, error) {
	payload := geminiGenerateRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageB64}},
			},
		}},
	}
	if system != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	return c.generateContent(ctx, payload)
}

// GenerateImage calls the Imagen predict endpoint and returns the decoded
// image bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	key, err := c.resolveKey(ctx)
	if err != nil {
		return nil, err
	}
	payload := imagenPredictRequest{
		Instances:  imagenInstance{Prompt: prompt},
		Parameters: imagenParameters{SampleCount: 1, AspectRatio: aspectRatio},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrUpstream, err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, url.PathEscape(c.imageModel), url.QueryEscape(key))

	var out imagenPredictResponse
	if err := c.retry.Do(ctx, c.postJSON(ctx, endpoint, body, &out)); err != nil {
		return nil, err
	}
	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		c.logger.Error().Msg("imagen response missing prediction bytes")
		return nil, fmt.Errorf("%w: invalid response from image generator", domain.ErrUpstream)
	}
	data, err := base64.StdEncoding.DecodeString(out.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image payload: %v", domain.ErrUpstream, err)
	}
	return data, nil
}

func (c *Client) generateContent(ctx context.Context, payload geminiGenerateRequest) (string, error) {
	key, err := c.resolveKey(ctx)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrUpstream, err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.textModel), url.QueryEscape(key))

	var out geminiGenerateResponse
	if err := c.retry.Do(ctx, c.postJSON(ctx, endpoint, body, &out)); err != nil {
		return "", err
	}

	if blocked(out) {
		return "", domain.ErrContentBlocked
	}
	text := extractText(out)
	if text == "" {
		raw, _ := json.Marshal(out)
		c.logger.Error().RawJSON("payload", raw).Msg("gemini response missing text")
		return "", fmt.Errorf("%w: invalid response structure", domain.ErrUpstream)
	}
	return text, nil
}

// postJSON returns a retryable operation: the request is rebuilt on every
// attempt so a consumed body is never reused.
func (c *Client) postJSON(ctx context.Context, endpoint string, body []byte, out any) func() error {
	return func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrUpstream, err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if transientStatus(resp.StatusCode) {
			c.logger.Warn().Int("status", resp.StatusCode).Msg("gemini transient failure, will retry")
			return fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			snippet := readSnippet(resp.Body, 512)
			c.logger.Error().Int("status", resp.StatusCode).Str("body", snippet).Msg("gemini request rejected")
			return backoff.Permanent(fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err))
		}
		return nil
	}
}

func (c *Client) resolveKey(ctx context.Context) (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if c.keys != nil {
		key, err := c.keys.GeminiAPIKey(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("credential store lookup failed")
		} else if key != "" {
			return key, nil
		}
	}
	return "", domain.ErrConfiguration
}

func blocked(resp geminiGenerateResponse) bool {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return true
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == "SAFETY" {
			return true
		}
	}
	return false
}

func extractText(resp geminiGenerateResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func readSnippet(r io.Reader, n int64) string {
	data, _ := io.ReadAll(io.LimitReader(r, n))
	return string(data)
}
