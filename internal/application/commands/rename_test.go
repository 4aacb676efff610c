package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
)

func TestRename(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	syntax := mustFind(tree, domain.KindTopic, 1)

	cmd := NewRenameCommand(store, tree, syntax.Key, "Syntax & Style")
	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Rename"}, store.calls)
	assert.Equal(t, "Syntax & Style", syntax.Topic.Title)
	assert.Equal(t, "Syntax & Style", syntax.Title())
	assert.Equal(t, `Renamed Topic to "Syntax & Style"`, result.Message)
}

func TestRenameFailureKeepsTitle(t *testing.T) {
	store := newFakeStore()
	store.errs["Rename"] = assert.AnError
	tree := testTree()
	quiz := mustFind(tree, domain.KindLesson, 9)

	cmd := NewRenameCommand(store, tree, quiz.Key, "Exam")
	_, err := cmd.Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Quiz", quiz.Title())
}

func TestRenameRequiresTitle(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	quiz := mustFind(tree, domain.KindLesson, 9)

	cmd := NewRenameCommand(store, tree, quiz.Key, "")
	_, err := cmd.Execute(context.Background())

	var valErr *application.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, store.calls)
}

func TestRenameUnknownKey(t *testing.T) {
	store := newFakeStore()
	cmd := NewRenameCommand(store, testTree(), "gone", "anything")
	_, err := cmd.Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}
