// Package search filters developer listings and sequences search requests.
package search

import (
	"regexp"
	"strings"

	"github.com/gigit/web/internal/domain"
)

// Query holds the three search inputs of the connect page.
type Query struct {
	Term     string `json:"q"`
	JobTitle string `json:"job"`
	Category string `json:"category"`
}

// Empty reports whether every input is blank.
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Term) == "" &&
		strings.TrimSpace(q.JobTitle) == "" &&
		strings.TrimSpace(q.Category) == ""
}

type matcher struct {
	term     *regexp.Regexp
	jobTitle *regexp.Regexp
	category *regexp.Regexp
}

// compile builds case-insensitive substring patterns. Input is quoted so
// that characters such as "+" in "C++" match literally.
func compile(q Query) matcher {
	return matcher{
		term:     substring(q.Term),
		jobTitle: substring(q.JobTitle),
		category: substring(q.Category),
	}
}

func substring(s string) *regexp.Regexp {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))
}

func matches(re *regexp.Regexp, fields ...string) bool {
	if re == nil {
		return true
	}
	for _, f := range fields {
		if re.MatchString(f) {
			return true
		}
	}
	return false
}

func (m matcher) match(u domain.User) bool {
	return matches(m.term, u.FirstName, u.LastName, u.FullName(), u.Bio) &&
		matches(m.jobTitle, u.Specialization) &&
		matches(m.category, u.Specialization)
}

// Filter returns the users matching q, in their original order. The input
// slice is not modified.
func Filter(users []domain.User, q Query) []domain.User {
	m := compile(q)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if m.match(u) {
			out = append(out, u)
		}
	}
	return out
}

// Tail returns the last n users; n <= 0 returns all of them.
func Tail(users []domain.User, n int) []domain.User {
	if n <= 0 || len(users) <= n {
		return users
	}
	return users[len(users)-n:]
}
