package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greenhouseHTML = `<html>
<head><title>Acme Careers</title></head>
<body>
<nav>Home | Jobs | About</nav>
<h1>Backend Engineer</h1>
<div class="job__description body">
  <p>We build distributed systems in Go.</p>
  <p>You will own services end to end.</p>
</div>
<footer>© Acme</footer>
</body>
</html>`

func TestExtractJobContext_GreenhouseSelectors(t *testing.T) {
	job, err := ExtractJobContext("https://boards.greenhouse.io/acme/jobs/1", greenhouseHTML)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "acme", job.Company)
	assert.Contains(t, job.Description, "distributed systems in Go")
	// Navigation noise is stripped before extraction.
	assert.NotContains(t, job.Description, "Home | Jobs")
}

func TestExtractJobContext_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>A plain page describing the role.</p></body></html>`
	job, err := ExtractJobContext("https://careers.example.com/apply", html)
	require.NoError(t, err)
	assert.Contains(t, job.Description, "describing the role")
}

func TestExtractJobContext_TitleFallsBackToTitleTag(t *testing.T) {
	html := `<html><head><title>Staff Engineer - Acme</title></head><body><p>Body text</p></body></html>`
	job, err := ExtractJobContext("https://careers.example.com/apply", html)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer - Acme", job.Title)
}

func TestCompanyFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://boards.greenhouse.io/acme/jobs/1", "acme"},
		{"https://jobs.lever.co/globex/abc-def", "globex"},
		{"https://jobs.ashbyhq.com/initech/xyz", "initech"},
		{"https://careers.example.com/apply", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, companyFromURL(tt.url))
		})
	}
}

func TestCleanWhitespace(t *testing.T) {
	input := "  Line one   with   gaps  \n\n\n\n\n  Line two  "
	assert.Equal(t, "Line one with gaps\n\nLine two", cleanWhitespace(input))
}

func TestJobContextOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(greenhouseHTML))
	}))
	defer srv.Close()

	opts := &Options{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent, UseBrowser: false}
	job, err := JobContext(context.Background(), srv.URL+"/jobs/1", opts)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Contains(t, job.Description, "distributed systems")
}

func TestJobContextRejectsInvalidURL(t *testing.T) {
	_, err := JobContext(context.Background(), "not-a-url", nil)
	require.Error(t, err)
	var ingestErr *Error
	assert.ErrorAs(t, err, &ingestErr)
}

func TestJobContextHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := &Options{Timeout: DefaultTimeout, UseBrowser: false}
	_, err := JobContext(context.Background(), srv.URL, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
