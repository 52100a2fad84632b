// Package ingest scrapes job-posting context (title, company, description
// text) from an application URL so a run can be created from a bare link.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/apply-agent/internal/fill"
	"github.com/jonathan/apply-agent/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ApplyAgent/1.0)"

// minContentLength is the minimum extracted text length to consider a
// plain HTTP fetch successful; shorter results trigger browser rendering.
const minContentLength = 500

// Error represents an error during job-context scraping.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Options configures scraping.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render with a headless browser when HTTP yields too little
}

// DefaultOptions returns sensible scraping defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent, UseBrowser: true}
}

// JobContext fetches the posting at jobURL and extracts title, company and
// description text. JS-heavy pages fall back to headless rendering when
// the options allow it.
func JobContext(ctx context.Context, jobURL string, opts *Options) (*types.JobContext, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	parsed, err := url.Parse(jobURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: jobURL, Message: "invalid URL", Cause: err}
	}

	html, err := fetchHTML(ctx, jobURL, opts)
	if err != nil {
		return nil, err
	}

	job, err := ExtractJobContext(jobURL, html)
	if err != nil {
		return nil, err
	}

	if opts.UseBrowser && len(strings.TrimSpace(job.Description)) < minContentLength {
		rendered, rerr := renderWithBrowser(ctx, jobURL, opts.Timeout)
		if rerr == nil {
			if rich, eerr := ExtractJobContext(jobURL, rendered); eerr == nil && len(rich.Description) > len(job.Description) {
				job = rich
			}
		}
	}

	if strings.TrimSpace(job.Description) == "" {
		return nil, &Error{URL: jobURL, Message: "no description text extracted"}
	}
	return job, nil
}

func fetchHTML(ctx context.Context, jobURL string, opts *Options) (string, error) {
	client := &http.Client{Timeout: opts.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jobURL, nil)
	if err != nil {
		return "", &Error{URL: jobURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: jobURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: jobURL, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: jobURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

// ExtractJobContext parses posting HTML into a job context. Content
// selectors are chosen per ATS provider, with generic fallbacks.
func ExtractJobContext(jobURL, html string) (*types.JobContext, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: jobURL, Message: "failed to parse HTML", Cause: err}
	}

	// Strip navigation and form noise before extracting text.
	doc.Find("nav, footer, header, script, style, noscript, form, .cookie-banner, .social-share").Remove()

	var content *goquery.Selection
	for _, selector := range contentSelectors(fill.Resolve(jobURL)) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	job := &types.JobContext{
		URL:         jobURL,
		Title:       strings.TrimSpace(doc.Find("h1").First().Text()),
		Company:     companyFromURL(jobURL),
		Description: cleanWhitespace(content.Text()),
	}
	if job.Title == "" {
		job.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return job, nil
}

// contentSelectors returns description selectors for the resolved
// provider, most specific first.
func contentSelectors(provider fill.Provider) []string {
	switch provider {
	case fill.ProviderGreenhouse:
		return []string{".job__description.body", ".job__description", "#content", ".job-post-container", "main"}
	case fill.ProviderLever:
		return []string{".posting-page", ".posting-description", ".content", "main"}
	case fill.ProviderWorkday:
		return []string{"[data-automation-id='jobDescription']", ".job-description", "main"}
	case fill.ProviderAshby:
		return []string{"[class*='jobPosting']", ".job-description", "main"}
	default:
		return []string{".job-description", "#job-description", ".posting-content", ".job-details", "main", "article", "#content"}
	}
}

var rxPathSegment = regexp.MustCompile(`[^/]+`)

// companyFromURL guesses the company slug from well-known board URL shapes
// like boards.greenhouse.io/<company> and jobs.lever.co/<company>.
func companyFromURL(jobURL string) string {
	parsed, err := url.Parse(jobURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	if strings.Contains(host, "greenhouse.io") || strings.Contains(host, "lever.co") || strings.Contains(host, "ashbyhq.com") {
		if seg := rxPathSegment.FindString(strings.TrimPrefix(parsed.Path, "/")); seg != "" {
			return seg
		}
	}
	return ""
}

var rxSpaces = regexp.MustCompile(`[ \t]+`)
var rxBlankLines = regexp.MustCompile(`\n{3,}`)

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(rxSpaces.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	out = rxBlankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
