package idea

import (
	"encoding/json"
	"strings"
	"time"
)

// Priority is the submitter's estimate of how much an idea matters.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts the three priorities case-insensitively. An empty
// string yields PriorityLow.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityLow, true
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return "", false
}

// VoteType selects which counter a vote increments.
type VoteType string

const (
	Upvote   VoteType = "upvote"
	Downvote VoteType = "downvote"
)

func (v VoteType) Valid() bool { return v == Upvote || v == Downvote }

// Idea is a submitted feature request as persisted in the ideas document.
// Upvotes and Downvotes only ever grow.
type Idea struct {
	ID          string    `json:"id" bson:"id"`
	Summary     string    `json:"summary" bson:"summary"`
	Description string    `json:"description" bson:"description"`
	EmployeeID  string    `json:"employeeId" bson:"employeeId"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Upvotes     int       `json:"upvotes" bson:"upvotes"`
	Downvotes   int       `json:"downvotes" bson:"downvotes"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// createdAtLayouts are the non-RFC 3339 timestamps accepted from stored
// documents, tried in order.
var createdAtLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON decodes an idea leniently on createdAt: it is display-only,
// so a missing or malformed value decodes as the zero time instead of
// failing the whole document.
func (i *Idea) UnmarshalJSON(b []byte) error {
	type plain Idea
	var aux struct {
		plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*i = Idea(aux.plain)
	i.CreatedAt = parseCreatedAt(aux.CreatedAt)
	return nil
}

func parseCreatedAt(raw json.RawMessage) time.Time {
	var t time.Time
	if err := json.Unmarshal(raw, &t); err == nil {
		return t
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Draft carries the caller-supplied fields of a new idea.
type Draft struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	EmployeeID  string `json:"employeeId"`
	Priority    string `json:"priority,omitempty"`
}

// WithEmployee pairs an idea with its submitter. Employee is nil when the
// reference is empty or dangling.
type WithEmployee struct {
	Idea     Idea      `json:"idea"`
	Employee *Employee `json:"employee"`
}

// Page is one slice of the filtered, sorted idea list.
type Page struct {
	Items         []Idea `json:"items"`
	TotalMatching int    `json:"totalMatching"`
	TotalPages    int    `json:"totalPages"`
	CurrentPage   int    `json:"currentPage"`
	// Degraded is set when the ideas document could not be read and the
	// page was served empty instead of failing.
	Degraded bool `json:"degraded,omitempty"`
}
