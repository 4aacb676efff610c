package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
)

func TestDeleteSubTopicDropsSubtree(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	variables := mustFind(tree, domain.KindSubTopic, 10)
	widget := &fakeWidget{}
	bus := application.NewBus()
	var removed []application.NodeRemoved
	bus.Subscribe(func(event any) {
		if r, ok := event.(application.NodeRemoved); ok {
			removed = append(removed, r)
		}
	})

	cmd := NewDeleteNodeCommand(store, tree, variables.Key)
	cmd.Bus = bus
	cmd.Widget = widget

	result, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Delete SubTopic 10"}, store.calls)
	assert.Len(t, result.RemovedKeys, 3, "the subtopic and its two lessons")

	_, err = tree.FindByEntityID(domain.KindLesson, 7)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	require.Len(t, removed, 1)
	assert.Equal(t, "Syntax", removed[0].Parent.Title())
	require.Len(t, widget.removed, 1)
	assert.ElementsMatch(t, result.RemovedKeys, widget.removed[0])
}

func TestDeleteClosesSiblingGap(t *testing.T) {
	store := newFakeStore()
	tree := testTree()
	syntax := mustFind(tree, domain.KindTopic, 1)
	variables := mustFind(tree, domain.KindSubTopic, 10)

	cmd := NewDeleteNodeCommand(store, tree, variables.Key)
	_, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, syntax.Children, 1)
	assert.Equal(t, "Quiz", syntax.Children[0].Title())
	assert.Equal(t, 0, syntax.Children[0].SortOrder)
}

func TestDeleteCourseRootRejected(t *testing.T) {
	store := newFakeStore()
	tree := testTree()

	cmd := NewDeleteNodeCommand(store, tree, tree.Root().Key)
	_, err := cmd.Execute(context.Background())

	var valErr *application.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, store.calls)
}

func TestDeleteFailureLeavesTree(t *testing.T) {
	store := newFakeStore()
	store.errs["Delete Lesson 9"] = assert.AnError
	tree := testTree()
	quiz := mustFind(tree, domain.KindLesson, 9)

	cmd := NewDeleteNodeCommand(store, tree, quiz.Key)
	_, err := cmd.Execute(context.Background())

	require.Error(t, err)
	found, findErr := tree.FindByKey(quiz.Key)
	require.NoError(t, findErr)
	assert.Same(t, quiz, found)
}

func TestDeleteUnknownKey(t *testing.T) {
	store := newFakeStore()
	cmd := NewDeleteNodeCommand(store, testTree(), "gone")
	_, err := cmd.Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}
