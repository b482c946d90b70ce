package judge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"

// Markers from CodeChef's CSS-module class names on the mobile submissions
// tab. Brittle by nature; the result is best-effort.
const (
	submissionsMarker = "_my-submissions_"
	containerMarker   = "_data__container_"
	keyMarker         = "_key_"
	valueMarker       = "_value_"

	resultKey       = "Result"
	acceptedVerdict = "Accepted"
)

// Cookie is a browser session cookie forwarded by the caller.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is the tri-state outcome of a submissions-page check.
type Result struct {
	Accepted      bool `json:"accepted"`
	HasSubmission bool `json:"hasSubmission"`
}

// Client fetches a problem's submissions page on the judge site with the
// caller's session cookies and reports whether an Accepted verdict is shown.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) submissionsURL(problemCode string) string {
	return fmt.Sprintf("%s/problems/%s?tab=submissions", c.baseURL, problemCode)
}

// CheckAccepted loads the submissions tab for the problem and scans it. The
// response body is closed on every path.
func (c *Client) CheckAccepted(ctx context.Context, cookies []Cookie, problemCode string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.submissionsURL(problemCode), nil)
	if err != nil {
		return nil, fmt.Errorf("judge.CheckAccepted: build request: %w", err)
	}
	req.Header.Set("User-Agent", mobileUserAgent)
	for _, ck := range cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge.CheckAccepted: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("judge.CheckAccepted: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("judge.CheckAccepted: read body: %w", err)
	}

	return scanSubmissionsPage(string(body)), nil
}

// scanSubmissionsPage inspects the rendered page. No submissions container
// means the user has no submission for this problem. The verdict is read
// from the Result key/value cells only: a row counts as accepted when its
// Result value is exactly "Accepted", so "Partially Accepted" or stray
// page text never match.
func scanSubmissionsPage(page string) *Result {
	start := strings.Index(page, submissionsMarker)
	if start == -1 {
		return &Result{Accepted: false, HasSubmission: false}
	}
	section := page[start:]
	if !strings.Contains(section, containerMarker) {
		return &Result{Accepted: false, HasSubmission: false}
	}

	result := &Result{Accepted: false, HasSubmission: true}
	rest := section
	for {
		key, afterKey, ok := elementText(rest, keyMarker)
		if !ok {
			break
		}
		rest = afterKey
		if key != resultKey {
			continue
		}
		value, afterValue, ok := elementText(rest, valueMarker)
		if !ok {
			break
		}
		rest = afterValue
		if value == acceptedVerdict {
			result.Accepted = true
			break
		}
	}
	return result
}

// elementText returns the trimmed text content of the first element whose
// class attribute contains marker, plus the remainder of the page after it.
func elementText(page, marker string) (text, rest string, ok bool) {
	i := strings.Index(page, marker)
	if i == -1 {
		return "", "", false
	}
	rest = page[i:]
	open := strings.Index(rest, ">")
	if open == -1 {
		return "", "", false
	}
	rest = rest[open+1:]
	end := strings.Index(rest, "<")
	if end == -1 {
		return "", "", false
	}
	return strings.TrimSpace(rest[:end]), rest[end:], true
}
