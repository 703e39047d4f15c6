package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Preview is the extracted draft of an external posting. Fields the page did
// not expose are left empty for the company to fill in.
type Preview struct {
	SourceURL   string `json:"source_url"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// titleSelectors are tried in order for the posting title.
var titleSelectors = []string{
	"h1.job-title",
	".job-title",
	"[data-testid='job-title']",
	"meta[property='og:title']",
	"h1",
}

// companySelectors are tried in order for the hiring company name.
var companySelectors = []string{
	".company-name",
	"[data-testid='company-name']",
	"meta[property='og:site_name']",
	".employer",
}

// locationSelectors are tried in order for the work location.
var locationSelectors = []string{
	".job-location",
	"[data-testid='job-location']",
	".location",
}

// descriptionSelectors are tried in order for the posting body.
var descriptionSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
}

// extractPreview parses a posting page into a draft posting.
func extractPreview(html, sourceURL string) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove noise elements before extracting text
	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	return &Preview{
		SourceURL:   sourceURL,
		Title:       firstMatch(doc, titleSelectors),
		CompanyName: firstMatch(doc, companySelectors),
		Location:    firstMatch(doc, locationSelectors),
		Description: cleanWhitespace(firstMatch(doc, descriptionSelectors)),
	}, nil
}

// firstMatch returns the text of the first selector that matches. Meta tags
// yield their content attribute instead of inner text.
func firstMatch(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		first := selection.First()
		if strings.HasPrefix(selector, "meta") {
			if content, ok := first.Attr("content"); ok && strings.TrimSpace(content) != "" {
				return strings.TrimSpace(content)
			}
			continue
		}
		if text := strings.TrimSpace(first.Text()); text != "" {
			return text
		}
	}
	return ""
}

// cleanWhitespace normalizes whitespace in extracted text.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
