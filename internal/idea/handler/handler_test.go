package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/idea/repository"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func seededRouter(t *testing.T, mutating ...gin.HandlerFunc) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore(
		[]idea.Idea{
			{ID: "1", Summary: "Dark mode", Description: "Theme", EmployeeID: "e1", Priority: idea.PriorityLow, Upvotes: 5},
			{ID: "2", Summary: "CSV export", Description: "Export", EmployeeID: "e2", Priority: idea.PriorityHigh, Upvotes: 9},
		},
		[]idea.Employee{{ID: "e1", Name: "Ada Lovelace", Department: "Engineering"}},
	)
	svc := service.New(store,
		service.WithClock(func() time.Time { return time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC) }),
		service.WithIDGenerator(func() string { return "new" }),
	)
	g := gin.New()
	RegisterRoutes(g, svc, mutating...)
	return g, store
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestIdeaRoutes_Lifecycle(t *testing.T) {
	g, store := seededRouter(t)

	// list
	w := do(g, http.MethodGet, "/api/ideas?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page idea.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)
	assert.Equal(t, 2, page.TotalPages)
	assert.NotContains(t, w.Body.String(), "degraded")

	// create
	w = do(g, http.MethodPost, "/api/ideas", `{"summary":"Standup timer","description":"Countdown","employeeId":"e1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, idea.PriorityLow, created.Priority)

	// get with employee
	w = do(g, http.MethodGet, "/api/ideas/new", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Idea     idea.Idea      `json:"idea"`
		Employee *idea.Employee `json:"employee"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Standup timer", got.Idea.Summary)
	require.NotNil(t, got.Employee)
	assert.Equal(t, "Ada", got.Employee.FirstName)

	// vote
	w = do(g, http.MethodPost, "/api/ideas/new/vote", `{"voteType":"upvote"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var voted idea.Idea
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voted))
	assert.Equal(t, 1, voted.Upvotes)

	// delete
	w = do(g, http.MethodDelete, "/api/ideas/new", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(g, http.MethodGet, "/api/ideas/new", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
	assert.Equal(t, 3, store.Saves())
}

func TestIdeaRoutes_EmployeeNullWhenDangling(t *testing.T) {
	g, _ := seededRouter(t)
	w := do(g, http.MethodGet, "/api/ideas/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee":null`)
}

func TestIdeaRoutes_BadRequests(t *testing.T) {
	g, store := seededRouter(t)

	cases := []struct {
		name, method, path, body string
	}{
		{"negative page", http.MethodGet, "/api/ideas?page=-1", ""},
		{"text limit", http.MethodGet, "/api/ideas?limit=all", ""},
		{"limit over max", http.MethodGet, "/api/ideas?limit=500", ""},
		{"malformed body", http.MethodPost, "/api/ideas", `{"summary":`},
		{"missing fields", http.MethodPost, "/api/ideas", `{"summary":"only"}`},
		{"bad priority", http.MethodPost, "/api/ideas", `{"summary":"s","description":"d","employeeId":"e1","priority":"urgent"}`},
		{"bad vote type", http.MethodPost, "/api/ideas/1/vote", `{"voteType":"meh"}`},
		{"vote without body", http.MethodPost, "/api/ideas/1/vote", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(g, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Zero(t, store.Saves())
}

func TestIdeaRoutes_HugePageIsEmpty(t *testing.T) {
	g, _ := seededRouter(t)
	w := do(g, http.MethodGet, "/api/ideas?page=9223372036854775807&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page idea.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalMatching)
}

func TestIdeaRoutes_NotFound(t *testing.T) {
	g, store := seededRouter(t)
	for _, path := range []string{"/api/ideas/99", "/api/employees/e9"} {
		w := do(g, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPost, "/api/ideas/99/vote", `{"voteType":"downvote"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodDelete, "/api/ideas/99", "").Code)
	assert.Zero(t, store.Saves())
}

func TestEmployeeRoutes(t *testing.T) {
	g, _ := seededRouter(t)

	w := do(g, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	var es []idea.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &es))
	require.Len(t, es, 1)
	assert.Equal(t, "Lovelace", es[0].LastName)

	w = do(g, http.MethodGet, "/api/employees/e1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"department":"Engineering"`)
}

func TestMutatingMiddlewareWrapsWritesOnly(t *testing.T) {
	calls := 0
	block := func(c *gin.Context) {
		calls++
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	g, store := seededRouter(t, block)

	assert.Equal(t, http.StatusOK, do(g, http.MethodGet, "/api/ideas", "").Code)
	assert.Equal(t, http.StatusOK, do(g, http.MethodGet, "/api/ideas/1", "").Code)
	assert.Equal(t, 0, calls)

	assert.Equal(t, http.StatusTooManyRequests, do(g, http.MethodPost, "/api/ideas", `{}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(g, http.MethodPost, "/api/ideas/1/vote", `{"voteType":"upvote"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(g, http.MethodDelete, "/api/ideas/1", "").Code)
	assert.Equal(t, 3, calls)
	assert.Zero(t, store.Saves())
}

func TestPersistenceFailuresAreRetryable(t *testing.T) {
	svc := new(mockService)
	fail := fmt.Errorf("%w: save ideas: disk full", service.ErrPersistence)
	svc.On("ParseList", "", "", "").Return(service.ListParams{Page: 1, Limit: 20}, nil)
	svc.On("List", mock.Anything, service.ListParams{Page: 1, Limit: 20}).Return(nil, fail)
	svc.On("Get", mock.Anything, "1").Return(nil, fail)
	svc.On("Create", mock.Anything, idea.Draft{Summary: "s", Description: "d", EmployeeID: "e1"}).Return(nil, fail)
	svc.On("Vote", mock.Anything, "1", idea.Upvote).Return(nil, fail)
	svc.On("Delete", mock.Anything, "1").Return(fail)
	svc.On("Employee", mock.Anything, "e1").Return(nil, fail)

	g := gin.New()
	RegisterRoutes(g, svc)

	requests := []struct{ method, path, body string }{
		{http.MethodGet, "/api/ideas", ""},
		{http.MethodGet, "/api/ideas/1", ""},
		{http.MethodPost, "/api/ideas", `{"summary":"s","description":"d","employeeId":"e1"}`},
		{http.MethodPost, "/api/ideas/1/vote", `{"voteType":"upvote"}`},
		{http.MethodDelete, "/api/ideas/1", ""},
		{http.MethodGet, "/api/employees/e1", ""},
	}
	for _, r := range requests {
		w := do(g, r.method, r.path, r.body)
		require.Equal(t, http.StatusInternalServerError, w.Code, r.path)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["retryable"])
		assert.NotContains(t, body["error"], "disk full")
	}
	svc.AssertExpectations(t)
}

func TestInvalidListParamsSkipService(t *testing.T) {
	svc := new(mockService)
	svc.On("ParseList", "x", "", "").Return(service.ListParams{}, fmt.Errorf("%w: page \"x\"", service.ErrInvalidInput))

	g := gin.New()
	RegisterRoutes(g, svc)

	w := do(g, http.MethodGet, "/api/ideas?page=x", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
