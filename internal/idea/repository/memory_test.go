package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(sampleIdeas(), []idea.Employee{{ID: "e1", Name: "Ada Lovelace"}})

	got, err := s.LoadIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// mutating a loaded slice must not leak into the store
	got[0].Upvotes = 100
	again, err := s.LoadIdeas(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, again[0].Upvotes)

	got = got[:1]
	require.NoError(t, s.SaveIdeas(ctx, got))
	got[0].Summary = "changed after save"
	again, err = s.LoadIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, "Dark mode", again[0].Summary)
	require.Equal(t, 1, s.Saves())

	es, err := s.LoadEmployees(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", es[0].FirstName)
	require.Equal(t, idea.DefaultDepartment, es[0].Department)
}

func TestMemoryStoreInjectedFailures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(sampleIdeas(), nil)
	s.LoadErr = errors.New("disk on fire")

	_, err := s.LoadIdeas(ctx)
	require.ErrorIs(t, err, ErrUnreadable)
	_, err = s.LoadEmployees(ctx)
	require.ErrorIs(t, err, ErrUnreadable)
	require.Error(t, s.Ping(ctx))

	s.LoadErr = nil
	s.SaveErr = errors.New("read-only filesystem")
	require.Error(t, s.SaveIdeas(ctx, nil))
	require.Equal(t, 0, s.Saves())
}
