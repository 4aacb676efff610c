package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByKey(t *testing.T) {
	tree := Build(sampleContent())
	quiz, err := tree.FindByEntityID(KindLesson, 9)
	require.NoError(t, err)

	found, err := tree.FindByKey(quiz.Key)
	require.NoError(t, err)
	assert.Same(t, quiz, found)

	_, err = tree.FindByKey("no-such-key")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestParentOf(t *testing.T) {
	tree := Build(sampleContent())

	_, ok := tree.ParentOf(tree.Root())
	assert.False(t, ok, "root has no parent")

	declarations, _ := tree.FindByEntityID(KindLesson, 7)
	parent, ok := tree.ParentOf(declarations)
	require.True(t, ok)
	assert.Equal(t, KindSubTopic, parent.Kind)
	assert.Equal(t, "Variables", parent.Title())
}

func TestFindByEntityID(t *testing.T) {
	tree := Build(sampleContent())

	// Lesson 7 and topic... ids are scoped per kind, so the same number can
	// exist at several levels without ambiguity.
	topic, err := tree.FindByEntityID(KindTopic, 1)
	require.NoError(t, err)
	assert.Equal(t, "Syntax", topic.Title())

	course, err := tree.FindByEntityID(KindCourse, 1)
	require.NoError(t, err)
	assert.Same(t, tree.Root(), course)

	_, err = tree.FindByEntityID(KindLesson, 404)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestLessons(t *testing.T) {
	tree := Build(sampleContent())

	var ids []int64
	for _, lesson := range tree.Lessons() {
		ids = append(ids, lesson.ID())
	}
	assert.Equal(t, []int64{7, 8, 9}, ids, "traversal order is deterministic")
}
