// Package content serves the static informational pages.
package content

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed pages.yaml
var pagesYAML []byte

// FAQItem is one question and answer.
type FAQItem struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Section is one numbered section of the terms.
type Section struct {
	ID         string   `yaml:"id" json:"id"`
	Title      string   `yaml:"title" json:"title"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
}

// Pages holds the FAQ and the terms and conditions.
type Pages struct {
	LastUpdated string    `yaml:"last_updated" json:"last_updated"`
	FAQ         []FAQItem `yaml:"faq" json:"faq"`
	Terms       []Section `yaml:"terms" json:"terms"`
}

// Load parses the embedded page content.
func Load() (*Pages, error) {
	return Parse(pagesYAML)
}

// Parse decodes page content from YAML.
func Parse(data []byte) (*Pages, error) {
	var p Pages
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}
	return &p, nil
}

// SearchFAQ returns the items whose question or answer contains q,
// ignoring case. A blank q returns everything.
func (p *Pages) SearchFAQ(q string) []FAQItem {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return p.FAQ
	}
	var out []FAQItem
	for _, item := range p.FAQ {
		if containsFold(needle, item.Question, item.Answer) {
			out = append(out, item)
		}
	}
	return out
}

// SearchTerms returns the sections whose title or text contains q.
func (p *Pages) SearchTerms(q string) []Section {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return p.Terms
	}
	var out []Section
	for _, s := range p.Terms {
		if containsFold(needle, append([]string{s.Title}, s.Paragraphs...)...) {
			out = append(out, s)
		}
	}
	return out
}

// TermsText renders the terms as the downloadable plain-text document.
func (p *Pages) TermsText() string {
	var b strings.Builder
	for i, s := range p.Terms {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(strings.Join(s.Paragraphs, "\n"))
	}
	return b.String()
}

func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
