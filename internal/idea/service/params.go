package service

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams selects one page of the filtered idea list.
type ListParams struct {
	Page  int
	Limit int
	Query string
}

// ParseListParams interprets raw page/limit/query strings as supplied by the
// presentation layer. Empty page and limit take their defaults; anything
// else that does not parse is ErrInvalidInput. maxLimit <= 0 selects
// MaxPageSize.
func ParseListParams(page, limit, query string, defaultLimit, maxLimit int) (ListParams, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageSize
	}
	p := ListParams{Page: DefaultPage, Limit: defaultLimit, Query: query}

	if s := strings.TrimSpace(page); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return ListParams{}, fmt.Errorf("%w: page %q is not a non-negative integer", ErrInvalidInput, page)
		}
		p.Page = n
	}
	if s := strings.TrimSpace(limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return ListParams{}, fmt.Errorf("%w: limit %q is not a positive integer", ErrInvalidInput, limit)
		}
		p.Limit = n
	}
	if p.Limit > maxLimit {
		return ListParams{}, fmt.Errorf("%w: limit %d exceeds maximum %d", ErrInvalidInput, p.Limit, maxLimit)
	}
	return p, nil
}

// Validate checks already-typed parameters. The service calls it on every
// List so a zero or negative limit can never reach the page arithmetic.
func (p ListParams) Validate(maxLimit int) error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page %d is negative", ErrInvalidInput, p.Page)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit %d is not positive", ErrInvalidInput, p.Limit)
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		return fmt.Errorf("%w: limit %d exceeds maximum %d", ErrInvalidInput, p.Limit, maxLimit)
	}
	return nil
}
