package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stickerbingo/internal/prompt"
)

const (
	DefaultPollinationsBase = "https://image.pollinations.ai/prompt/"
	imageSize               = 256
)

// Pollinations builds deterministic image URLs on the public Pollinations
// endpoint. With Verify set it fetches the URL once and fails unless an
// image comes back, so broken generations surface as empty tiles.
type Pollinations struct {
	BaseURL string
	Verify  bool
	Client  *http.Client
}

// NewPollinations returns a backend on the public endpoint.
func NewPollinations(verify bool, timeout time.Duration) *Pollinations {
	return &Pollinations{
		BaseURL: DefaultPollinationsBase,
		Verify:  verify,
		Client:  &http.Client{Timeout: timeout},
	}
}

// URL formats the image address for a request.
func (p *Pollinations) URL(req prompt.Request) string {
	base := p.BaseURL
	if base == "" {
		base = DefaultPollinationsBase
	}
	return fmt.Sprintf("%s%s?seed=%d&width=%d&height=%d&nologo=true&style=cute&seed2=%d",
		base, url.PathEscape(req.Prompt), req.Seed, imageSize, imageSize, req.Seed+1)
}

func (p *Pollinations) Generate(ctx context.Context, req prompt.Request) (string, error) {
	u := p.URL(req)
	if !p.Verify {
		return u, nil
	}
	if err := p.verify(ctx, u); err != nil {
		return "", err
	}
	return u, nil
}

func (p *Pollinations) verify(ctx context.Context, u string) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build image request: %w", err)
	}
	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ct := resp.Header.Get("Content-Type")
	log.Debug().Int("status", resp.StatusCode).Str("content_type", ct).Dur("took", time.Since(start)).Msg("image fetched")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch image: status %d: %w", resp.StatusCode, ErrNoImage)
	}
	if !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("fetch image: content type %q: %w", ct, ErrNoImage)
	}
	return nil
}
