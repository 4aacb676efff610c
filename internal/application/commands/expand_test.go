package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
)

func TestExpandLoadsAndGrafts(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	syntax := mustFind(tree, domain.KindTopic, 1)
	widget := &fakeWidget{}

	cmd := NewExpandNodeCommand(store, tree, syntax.Key)
	cmd.Widget = widget

	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"LoadTopicContent"}, store.calls)
	assert.True(t, syntax.Expanded)

	// The fake returns two lessons with swapped orders; the graft sorts and
	// renumbers them and replaces the previously loaded subtree.
	require.Len(t, syntax.Children, 2)
	assert.Equal(t, "Loaded B", syntax.Children[0].Title())
	assert.Equal(t, "Loaded A", syntax.Children[1].Title())
	assert.Equal(t, 0, syntax.Children[0].SortOrder)

	_, err = tree.FindByEntityID(domain.KindSubTopic, 10)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound, "stale children left the arena")

	require.Len(t, widget.added, 1)
	assert.Equal(t, result.Children, widget.added[0])
}

func TestExpandRejectsNonTopic(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	variables := mustFind(tree, domain.KindSubTopic, 10)

	cmd := NewExpandNodeCommand(store, tree, variables.Key)
	_, err := cmd.Execute(context.Background())

	var valErr *application.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, store.calls)
}

func TestExpandLoadFailure(t *testing.T) {
	store := newFakeStore()
	store.errs["LoadTopicContent"] = assert.AnError
	tree := testTree()
	syntax := mustFind(tree, domain.KindTopic, 1)

	cmd := NewExpandNodeCommand(store, tree, syntax.Key)
	_, err := cmd.Execute(context.Background())

	require.Error(t, err)
	assert.False(t, syntax.Expanded)
	require.Len(t, syntax.Children, 2, "existing children survive a failed reload")
	assert.Equal(t, "Variables", syntax.Children[0].Title())
}
