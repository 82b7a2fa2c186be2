package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/idea/repository"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"github.com/integrationhub/ideaportal/pkg/metrics"
)

// Service implements the idea operations over a repository.Store. Every
// operation loads the whole collection; mutations write it back whole.
//
// Without WithSerializedWrites, concurrent mutations race at the
// granularity of load/save and the last writer wins.
type Service struct {
	store        repository.Store
	now          func() time.Time
	newID        func() string
	serialize    bool
	writeMu      sync.Mutex
	defaultLimit int
	maxLimit     int
	log          *logger.Entry
}

type Option func(*Service)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithIDGenerator overrides id assignment for new ideas.
func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

// WithSerializedWrites makes mutations of this Service run one at a time,
// which removes lost updates between callers sharing it.
func WithSerializedWrites(on bool) Option { return func(s *Service) { s.serialize = on } }

// WithPageSizes sets the default and maximum page size used by ParseList.
func WithPageSizes(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		s.defaultLimit = defaultLimit
		s.maxLimit = maxLimit
	}
}

func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		now:          time.Now,
		newID:        newTimeOrderedID,
		defaultLimit: DefaultPageSize,
		maxLimit:     MaxPageSize,
		log:          logger.With("component", "idea-service"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// newTimeOrderedID returns a UUIDv7, which sorts by creation time. It
// falls back to a random v4 if the v7 generator fails.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ParseList parses raw page/limit/query strings with this service's page sizes.
func (s *Service) ParseList(page, limit, query string) (ListParams, error) {
	return ParseListParams(page, limit, query, s.defaultLimit, s.maxLimit)
}

// List returns one page of ideas matching p.Query, most upvoted first. An
// unreadable ideas document is served as an empty, Degraded page.
func (s *Service) List(ctx context.Context, p ListParams) (*idea.Page, error) {
	if err := p.Validate(s.maxLimit); err != nil {
		record("list", err)
		return nil, err
	}
	degraded := false
	ideas, err := s.store.LoadIdeas(ctx)
	if err != nil {
		s.log.Warnf("list: serving empty page, ideas unreadable: %v", err)
		metrics.DegradedReads.WithLabelValues(repository.CollectionIdeas).Inc()
		ideas, degraded = []idea.Idea{}, true
	}

	matched := filterIdeas(ideas, p.Query)
	sortByUpvotes(matched)
	page := &idea.Page{
		Items:         paginate(matched, p.Page, p.Limit),
		TotalMatching: len(matched),
		TotalPages:    totalPages(len(matched), p.Limit),
		CurrentPage:   p.Page,
		Degraded:      degraded,
	}
	record("list", nil)
	return page, nil
}

// Get returns the idea with the given id and its submitter, if the
// submitter exists.
func (s *Service) Get(ctx context.Context, id string) (*idea.WithEmployee, error) {
	ideas, err := s.store.LoadIdeas(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load ideas: %v", ErrPersistence, err)
		record("get", err)
		return nil, err
	}
	i := indexOf(ideas, id)
	if i < 0 {
		err := fmt.Errorf("%w: idea %q", ErrNotFound, id)
		record("get", err)
		return nil, err
	}
	out := &idea.WithEmployee{Idea: ideas[i]}
	if empID := ideas[i].EmployeeID; empID != "" {
		es, err := s.store.LoadEmployees(ctx)
		if err != nil {
			s.log.Warnf("get %s: employees unreadable, omitting submitter: %v", id, err)
			metrics.DegradedReads.WithLabelValues(repository.CollectionEmployees).Inc()
		}
		for j := range es {
			if es[j].ID == empID {
				e := es[j]
				out.Employee = &e
				break
			}
		}
	}
	record("get", nil)
	return out, nil
}

// ValidateDraft checks the fields a new idea requires. Length thresholds
// belong to the presentation layer; only presence is enforced here.
func ValidateDraft(d idea.Draft) (idea.Priority, error) {
	var missing []string
	if strings.TrimSpace(d.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(d.EmployeeID) == "" {
		missing = append(missing, "employeeId")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	p, ok := idea.ParsePriority(d.Priority)
	if !ok {
		return "", fmt.Errorf("%w: priority %q must be High, Medium or Low", ErrInvalidInput, d.Priority)
	}
	return p, nil
}

// Create validates d, assigns id, timestamp and zero counters, and stores
// the new idea at the head of the collection.
func (s *Service) Create(ctx context.Context, d idea.Draft) (*idea.Idea, error) {
	priority, err := ValidateDraft(d)
	if err != nil {
		record("create", err)
		return nil, err
	}
	unlock := s.lockWrites()
	defer unlock()

	ideas, err := s.store.LoadIdeas(ctx)
	if err != nil {
		// saving now would replace the unread document with just this idea
		err = fmt.Errorf("%w: load ideas: %v", ErrPersistence, err)
		record("create", err)
		return nil, err
	}
	created := idea.Idea{
		ID:          s.newID(),
		Summary:     strings.TrimSpace(d.Summary),
		Description: strings.TrimSpace(d.Description),
		EmployeeID:  strings.TrimSpace(d.EmployeeID),
		Priority:    priority,
		CreatedAt:   s.now().UTC(),
	}
	updated := make([]idea.Idea, 0, len(ideas)+1)
	updated = append(updated, created)
	updated = append(updated, ideas...)
	if err := s.store.SaveIdeas(ctx, updated); err != nil {
		err = fmt.Errorf("%w: save ideas: %v", ErrPersistence, err)
		record("create", err)
		return nil, err
	}
	s.log.Infof("created idea %s by employee %s", created.ID, created.EmployeeID)
	record("create", nil)
	return &created, nil
}

// Vote increments exactly one counter of the idea with the given id.
func (s *Service) Vote(ctx context.Context, id string, vt idea.VoteType) (*idea.Idea, error) {
	if !vt.Valid() {
		err := fmt.Errorf("%w: vote type %q must be upvote or downvote", ErrInvalidInput, vt)
		record("vote", err)
		return nil, err
	}
	unlock := s.lockWrites()
	defer unlock()

	ideas, err := s.store.LoadIdeas(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load ideas: %v", ErrPersistence, err)
		record("vote", err)
		return nil, err
	}
	i := indexOf(ideas, id)
	if i < 0 {
		err := fmt.Errorf("%w: idea %q", ErrNotFound, id)
		record("vote", err)
		return nil, err
	}
	if vt == idea.Upvote {
		ideas[i].Upvotes++
	} else {
		ideas[i].Downvotes++
	}
	if err := s.store.SaveIdeas(ctx, ideas); err != nil {
		err = fmt.Errorf("%w: save ideas: %v", ErrPersistence, err)
		record("vote", err)
		return nil, err
	}
	voted := ideas[i]
	record("vote", nil)
	return &voted, nil
}

// Delete permanently removes the idea with the given id. A missing id
// leaves the document untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lockWrites()
	defer unlock()

	ideas, err := s.store.LoadIdeas(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load ideas: %v", ErrPersistence, err)
		record("delete", err)
		return err
	}
	i := indexOf(ideas, id)
	if i < 0 {
		err := fmt.Errorf("%w: idea %q", ErrNotFound, id)
		record("delete", err)
		return err
	}
	remaining := append(ideas[:i:i], ideas[i+1:]...)
	if err := s.store.SaveIdeas(ctx, remaining); err != nil {
		err = fmt.Errorf("%w: save ideas: %v", ErrPersistence, err)
		record("delete", err)
		return err
	}
	s.log.Infof("deleted idea %s", id)
	record("delete", nil)
	return nil
}

// Employees returns the normalized employee collection. An unreadable
// document yields an empty list rather than an error.
func (s *Service) Employees(ctx context.Context) ([]idea.Employee, error) {
	es, err := s.store.LoadEmployees(ctx)
	if err != nil {
		s.log.Warnf("employees unreadable, serving empty list: %v", err)
		metrics.DegradedReads.WithLabelValues(repository.CollectionEmployees).Inc()
		es = []idea.Employee{}
	}
	record("employees", nil)
	return es, nil
}

// Employee returns a single employee by id.
func (s *Service) Employee(ctx context.Context, id string) (*idea.Employee, error) {
	es, err := s.store.LoadEmployees(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load employees: %v", ErrPersistence, err)
		record("employee", err)
		return nil, err
	}
	for i := range es {
		if es[i].ID == id {
			e := es[i]
			record("employee", nil)
			return &e, nil
		}
	}
	err = fmt.Errorf("%w: employee %q", ErrNotFound, id)
	record("employee", err)
	return nil, err
}

// Ping reports whether the underlying store is reachable. Stores without a
// Pinger are assumed reachable.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.store.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Service) lockWrites() func() {
	if !s.serialize {
		return func() {}
	}
	s.writeMu.Lock()
	return s.writeMu.Unlock
}

func indexOf(ideas []idea.Idea, id string) int {
	for i := range ideas {
		if ideas[i].ID == id {
			return i
		}
	}
	return -1
}

func record(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomePersistence
	}
	metrics.IdeaOperations.WithLabelValues(op, outcome).Inc()
}
