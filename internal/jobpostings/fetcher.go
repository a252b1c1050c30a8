package jobpostings

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidURL indicates the job URL could not be parsed.
var ErrInvalidURL = errors.New("invalid job posting url")

// ErrFetch indicates a network-level failure retrieving the page.
var ErrFetch = errors.New("could not retrieve job description")

// ErrEmptyContent indicates the page yielded no visible text.
var ErrEmptyContent = errors.New("job posting page contains no visible text")

// ErrNotHTML indicates the URL returned something other than an HTML page.
var ErrNotHTML = errors.New("job posting url did not return an html page")

// BadStatusError reports a non-2xx response from the job page.
type BadStatusError struct {
	StatusCode int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("job posting url returned status %d", e.StatusCode)
}

const fetchTimeout = 20 * time.Second

// Fetcher retrieves a job posting page and strips it to visible text.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a Fetcher with a bounded timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// NewFetcherWithClient constructs a Fetcher with a caller-supplied client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch issues a GET for the URL and returns the page's visible text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", ErrInvalidURL
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; applymail/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BadStatusError{StatusCode: resp.StatusCode}
	}
	if !isHTML(resp.Header.Get("Content-Type")) {
		return "", fmt.Errorf("%w: got %s", ErrNotHTML, resp.Header.Get("Content-Type"))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrFetch, err)
	}

	text := VisibleText(doc)
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// isHTML reports whether a Content-Type header denotes an HTML page.
// A missing header is tolerated; an explicit non-HTML type is not.
func isHTML(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// VisibleText strips chrome elements and collapses the document to readable text.
// Job boards bury the description in boilerplate, so navigation, scripts and
// styling are removed before extracting text.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, iframe, noscript, svg").Remove()

	root := doc.Find("div.job-description, section.job-details, #job-content")
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	root.Find("h1, h2, h3, h4, h5, h6, p, li, td, div, span").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		if line := strings.TrimSpace(sel.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		if line := strings.TrimSpace(root.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	text := strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
