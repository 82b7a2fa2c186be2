package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/integrationhub/ideaportal/internal/idea"
	"golang.org/x/text/cases"
)

// filterIdeas keeps ideas whose summary or description contains q, compared
// under Unicode case folding. An empty q keeps everything.
func filterIdeas(ideas []idea.Idea, q string) []idea.Idea {
	if q == "" {
		return ideas
	}
	fold := cases.Fold()
	needle := fold.String(q)
	out := make([]idea.Idea, 0, len(ideas))
	for _, it := range ideas {
		if strings.Contains(fold.String(it.Summary), needle) || strings.Contains(fold.String(it.Description), needle) {
			out = append(out, it)
		}
	}
	return out
}

// sortByUpvotes orders by upvotes descending; equal counts keep their
// stored relative order.
func sortByUpvotes(ideas []idea.Idea) {
	slices.SortStableFunc(ideas, func(a, b idea.Idea) int {
		return cmp.Compare(b.Upvotes, a.Upvotes)
	})
}

// paginate returns the 1-based page of size limit. Pages outside the range,
// page 0 included, are empty.
func paginate(ideas []idea.Idea, page, limit int) []idea.Idea {
	// compare against the page count before multiplying so huge pages cannot overflow
	if page < 1 || page > totalPages(len(ideas), limit) {
		return []idea.Idea{}
	}
	start := (page - 1) * limit
	end := min(start+limit, len(ideas))
	return ideas[start:end]
}

func totalPages(n, limit int) int {
	return (n + limit - 1) / limit
}
