package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/integrationhub/ideaportal/internal/idea"
)

// ErrUnreadable wraps every failure to read or decode a persisted document.
// A document that does not exist yet is not an error: stores report it as
// an empty collection.
var ErrUnreadable = errors.New("document unreadable")

// Collection names, used as file/key/object/document identifiers and as
// log and metric labels.
const (
	CollectionIdeas     = "ideas"
	CollectionEmployees = "employees"
)

// Store persists the idea collection and serves the read-only employee
// collection, both as complete documents. SaveIdeas always replaces the
// whole idea document.
type Store interface {
	LoadIdeas(ctx context.Context) ([]idea.Idea, error)
	SaveIdeas(ctx context.Context, ideas []idea.Idea) error
	LoadEmployees(ctx context.Context) ([]idea.Employee, error)
}

// Pinger is implemented by stores that can report reachability for the
// readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func unreadable(collection string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnreadable, collection, err)
}

// encodeIdeas renders the idea document pretty-printed for diffability.
func encodeIdeas(ideas []idea.Idea) ([]byte, error) {
	if ideas == nil {
		ideas = []idea.Idea{}
	}
	b, err := json.MarshalIndent(ideas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ideas: %w", err)
	}
	return append(b, '\n'), nil
}

func decodeIdeas(b []byte) ([]idea.Idea, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return []idea.Idea{}, nil
	}
	var out []idea.Idea
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, unreadable(CollectionIdeas, err)
	}
	if out == nil {
		out = []idea.Idea{}
	}
	return out, nil
}

// decodeEmployees parses and normalizes the employee document.
func decodeEmployees(b []byte) ([]idea.Employee, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return []idea.Employee{}, nil
	}
	var out []idea.Employee
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, unreadable(CollectionEmployees, err)
	}
	if out == nil {
		out = []idea.Employee{}
	}
	return idea.NormalizeAll(out), nil
}

func cloneIdeas(in []idea.Idea) []idea.Idea {
	out := make([]idea.Idea, len(in))
	copy(out, in)
	return out
}
