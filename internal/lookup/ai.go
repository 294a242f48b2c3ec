package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultAnswerCap bounds free-form question answers.
	DefaultAnswerCap = 1500
	// DefaultEventsCap bounds disaster-events responses.
	DefaultEventsCap = 1200
	// DefaultTipsCap bounds eco/water tips responses.
	DefaultTipsCap = 1000
	// locationCap bounds the location-normalization helper response.
	locationCap = 50
)

var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// aiClient calls the text-completion endpoint. The completion API is a
// bespoke GET endpoint (prompt in, JSON text out), so it is driven by a
// plain http.Client rather than a vendor SDK.
type aiClient struct {
	endpoint string
	timeout  time.Duration
	attempts int
	backoff  time.Duration
	client   *http.Client

	sleep func(ctx context.Context, d time.Duration) error
}

func newAIClient(endpoint string, timeout time.Duration, maxRetries int, backoffFactor float64, client *http.Client) *aiClient {
	if client == nil {
		client = http.DefaultClient
	}
	attempts := maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	return &aiClient{
		endpoint: endpoint,
		timeout:  timeout,
		attempts: attempts,
		backoff:  time.Duration(backoffFactor * float64(time.Second)),
		client:   client,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// complete runs the completion request with bounded retry. attempts <= 0
// means the client default; pass 1 for single-attempt capabilities.
func (a *aiClient) complete(ctx context.Context, cap Capability, prompt, system string, maxChars, attempts int) (string, error) {
	if attempts <= 0 {
		attempts = a.attempts
	}

	full := strings.TrimSpace(prompt)
	if system != "" {
		full = strings.TrimSpace(system + "\n\n" + prompt)
	}

	var lastErr *Failure
	for attempt := 1; attempt <= attempts; attempt++ {
		text, failure := a.fetch(ctx, cap, full)
		if failure == nil {
			return truncate(normalizeCompletion(text), maxChars), nil
		}
		lastErr = failure

		// Empty results and client-side rejections do not improve on retry.
		if failure.Kind == FailEmpty {
			return "", failure
		}
		if attempt == attempts {
			break
		}
		delay := a.backoff * (1 << (attempt - 1))
		if err := a.sleep(ctx, delay); err != nil {
			return "", newFailure(cap, FailTimeout, err)
		}
	}
	return "", lastErr
}

func (a *aiClient) fetch(ctx context.Context, cap Capability, prompt string) (string, *Failure) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	u, err := url.Parse(a.endpoint)
	if err != nil {
		return "", newFailure(cap, FailUnexpected, err)
	}
	q := u.Query()
	q.Set("ask", prompt)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", newFailure(cap, FailUnexpected, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", newFailure(cap, classifyTransport(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newFailure(cap, FailUpstream, fmt.Errorf("completion endpoint status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", newFailure(cap, classifyTransport(err), err)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", newFailure(cap, FailUpstream, fmt.Errorf("completion endpoint decode: %w", err))
	}
	if strings.TrimSpace(payload.Response) == "" {
		return "", newFailure(cap, FailEmpty, nil)
	}
	return payload.Response, nil
}

// normalizeCompletion adapts completion markdown for Telegram: double-star
// bold becomes single-star and blank-line runs collapse to one blank line.
func normalizeCompletion(text string) string {
	text = boldRe.ReplaceAllString(text, "*$1*")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + "..."
}
