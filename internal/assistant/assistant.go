// Package assistant answers free-text dashboard questions by matching them
// against a table of keyword rules.
package assistant

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

// Store is the read-only data the assistant queries.
type Store interface {
	ListOrders(ctx context.Context, opts repository.ListOptions) ([]models.Order, error)
	ListProducts(ctx context.Context, opts repository.ListOptions) ([]models.Product, error)
	ListCustomers(ctx context.Context, opts repository.ListOptions) ([]models.Customer, error)
}

// Predicate is a conjunction of keyword groups. A normalised query matches
// when, for every group, it contains at least one of the group's keywords.
type Predicate [][]string

// Matches reports whether q satisfies every group.
func (p Predicate) Matches(q string) bool {
	for _, words := range p {
		found := false
		for _, kw := range words {
			if strings.Contains(q, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(p) > 0
}

// Rule is one intent: when Match holds, Answer produces the reply.
type Rule struct {
	Name     string
	Priority int
	Match    Predicate
	Answer   func(ctx context.Context) (string, error)
}

// Responder evaluates rules in ascending Priority; equal priorities are
// ordered by Name. The first matching rule answers. Unmatched queries get
// the help text.
type Responder struct {
	store Store
	now   func() time.Time
	rules []Rule
}

// NewResponder builds a Responder with the standard rule table. now supplies
// the clock used for month-relative answers.
func NewResponder(store Store, now func() time.Time) *Responder {
	r := &Responder{store: store, now: now}
	r.rules = r.defaultRules()
	SortRules(r.rules)
	return r
}

// SortRules orders rules by Priority, then Name.
func SortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}

// Normalize lower-cases and trims a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Match returns the first rule matching the normalised query.
func (r *Responder) Match(q string) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Match.Matches(q) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Answer replies to query. It returns utils.ErrInvalidQuery for an empty
// query; a whitespace-only query matches no rule and gets the help text.
func (r *Responder) Answer(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", utils.ErrInvalidQuery
	}
	q := Normalize(query)

	rule, ok := r.Match(q)
	if !ok {
		log.Debug().Str("query", q).Msg("assistant: no rule matched")
		return helpText, nil
	}
	log.Debug().Str("query", q).Str("rule", rule.Name).Msg("assistant: rule matched")
	return rule.Answer(ctx)
}

// Rules returns the rule names in evaluation order.
func (r *Responder) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

func anyOf(words ...string) []string { return words }

func allOf(groups ...[]string) Predicate { return Predicate(groups) }
