// Package catalog implements the public project catalog query: filter,
// search with relevance tiers, date ordering and pagination over a set
// of project documents.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/nkarpov/portfolio-site-backend/models"
)

const (
	DefaultLimit = 10

	// minSearchLen is the threshold below which a search term is ignored.
	minSearchLen = 2
)

// All disables the category or tech filter.
const All = "all"

// Sort orders.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Params are the catalog query inputs, all optional from the caller's
// point of view; the handler fills zero values with defaults.
type Params struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Tech     string
	Sort     string

	// IncludeDrafts bypasses the published-only filter. Admin only.
	IncludeDrafts bool
}

// Result is one catalog page plus the pagination envelope fields.
type Result struct {
	Projects   []*models.Project
	Total      int
	TotalPages int
	Page       int
}

// Relevance tiers for search ranking. Lower is better.
const (
	tierTitlePrefix = iota
	tierTitleSubstring
	tierTechnology
	tierNone
)

// Query filters, orders and paginates projects according to p. The
// input slice is not modified.
func Query(projects []*models.Project, p Params) (Result, error) {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 0 {
		return Result{}, ErrInvalidLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}

	matched := make([]*models.Project, 0, len(projects))
	for _, project := range projects {
		if !p.IncludeDrafts && project.Status != models.StatusPublished {
			continue
		}
		if p.Category != "" && p.Category != All && project.Category != p.Category {
			continue
		}
		if p.Tech != "" && p.Tech != All && !project.HasTechnology(p.Tech) {
			continue
		}
		matched = append(matched, project)
	}

	search := strings.TrimSpace(p.Search)
	searching := len([]rune(search)) >= minSearchLen
	if searching {
		withMatch := matched[:0:0]
		for _, project := range matched {
			if matchesSearch(project, search) {
				withMatch = append(withMatch, project)
			}
		}
		matched = withMatch

		// Relevance order first; the date sort below is the final key
		// and supersedes it when both are requested.
		sort.SliceStable(matched, func(i, j int) bool {
			return relevance(matched[i], search) < relevance(matched[j], search)
		})
	}

	if !searching || p.Sort != "" {
		ascending := p.Sort == SortOldest
		sort.SliceStable(matched, func(i, j int) bool {
			di, dj := matched[i].SortDate(), matched[j].SortDate()
			if ascending {
				return di.Before(dj)
			}
			return di.After(dj)
		})
	}

	total := len(matched)
	totalPages := (total + p.Limit - 1) / p.Limit // 0 when nothing matched

	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Projects:   matched[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       p.Page,
	}, nil
}

// matchesSearch reports whether the term appears in the title, short
// description or any technology, case-insensitively.
func matchesSearch(p *models.Project, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.ShortDescription), needle) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), needle) {
			return true
		}
	}
	return false
}

// relevance buckets a project for the given search term: title prefix
// beats title substring beats technology match; a short-description
// only match lands in the lowest tier.
func relevance(p *models.Project, search string) int {
	needle := strings.ToLower(search)
	title := strings.ToLower(p.Title)

	switch {
	case strings.HasPrefix(title, needle):
		return tierTitlePrefix
	case strings.Contains(title, needle):
		return tierTitleSubstring
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), needle) {
			return tierTechnology
		}
	}
	return tierNone
}

// DistinctCategories returns the sorted deduplicated categories present
// in projects.
func DistinctCategories(projects []*models.Project) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DistinctTechnologies returns the sorted deduplicated union of all
// technology sets in projects.
func DistinctTechnologies(projects []*models.Project) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		for _, tech := range p.Technologies {
			if tech != "" {
				seen[tech] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
