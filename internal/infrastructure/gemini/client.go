package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// DefaultModel model used when none is configured
const DefaultModel = "gemini-1.5-flash"

// Client Gemini text generation client
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	sem     chan struct{}
	limiter *rate.Limiter
}

// Options tunes the request limits
type Options struct {
	Model         string
	MaxConcurrent int
	MinInterval   time.Duration
}

// NewClient creates a Gemini client authenticated with apiKey
func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = 350 * time.Millisecond
	}

	return &Client{
		client:  client,
		model:   client.GenerativeModel(opts.Model),
		sem:     make(chan struct{}, opts.MaxConcurrent),
		limiter: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
	}, nil
}

// GenerateResponse sends prompt as-is and returns the concatenated text of
// all candidates. No candidates yields an empty string.
func (g *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	return extractText(resp), nil
}

// extractText joins the text parts of every candidate
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

func (g *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := g.limiter.Wait(ctx); err != nil {
		<-g.sem
		return nil, err
	}

	return func() {
		<-g.sem
	}, nil
}

// Close releases the underlying connection
func (g *Client) Close() error {
	return g.client.Close()
}
