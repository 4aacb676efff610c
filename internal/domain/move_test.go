package domain

import "testing"

func TestAllowedTarget(t *testing.T) {
	tests := []struct {
		name   string
		source Kind
		target Kind
		want   MoveReason
	}{
		{"lesson to subtopic", KindLesson, KindSubTopic, MoveAllowed},
		{"lesson to topic", KindLesson, KindTopic, MoveAllowed},
		{"lesson to lesson", KindLesson, KindLesson, MoveKindMismatch},
		{"lesson to course", KindLesson, KindCourse, MoveKindMismatch},
		{"subtopic to topic", KindSubTopic, KindTopic, MoveAllowed},
		{"subtopic to subtopic", KindSubTopic, KindSubTopic, MoveKindMismatch},
		{"subtopic to course", KindSubTopic, KindCourse, MoveKindMismatch},
		{"subtopic to lesson", KindSubTopic, KindLesson, MoveKindMismatch},
		{"topic to course", KindTopic, KindCourse, MoveAllowed},
		{"topic to subtopic", KindTopic, KindSubTopic, MoveKindMismatch},
		{"topic to topic", KindTopic, KindTopic, MoveKindMismatch},
		{"topic to lesson", KindTopic, KindLesson, MoveKindMismatch},
		{"course to course", KindCourse, KindCourse, MoveSourceImmovable},
		{"course to topic", KindCourse, KindTopic, MoveSourceImmovable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedTarget(tt.source, tt.target); got != tt.want {
				t.Errorf("AllowedTarget(%s, %s) = %s, want %s", tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestCheckMove(t *testing.T) {
	tree := Build(sampleContent())
	declarations, _ := tree.FindByEntityID(KindLesson, 7)
	quiz, _ := tree.FindByEntityID(KindLesson, 9)
	variables, _ := tree.FindByEntityID(KindSubTopic, 10)
	syntax, _ := tree.FindByEntityID(KindTopic, 1)
	tooling, _ := tree.FindByEntityID(KindTopic, 2)

	tests := []struct {
		name   string
		source *Node
		target *Node
		want   MoveReason
	}{
		{"lesson to another topic", declarations, tooling, MoveAllowed},
		{"direct lesson into subtopic", quiz, variables, MoveAllowed},
		{"lesson back to its parent", declarations, variables, MoveSameParent},
		{"same node", syntax, syntax, MoveSameNode},
		{"subtopic onto its own topic", variables, syntax, MoveSameParent},
		{"subtopic to other topic", variables, tooling, MoveAllowed},
		{"topic onto subtopic", syntax, variables, MoveKindMismatch},
		{"topic onto its course", syntax, tree.Root(), MoveSameParent},
		{"course is immovable", tree.Root(), syntax, MoveSourceImmovable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.CheckMove(tt.source, tt.target); got != tt.want {
				t.Errorf("CheckMove(%s, %s) = %s, want %s", tt.source.Title(), tt.target.Title(), got, tt.want)
			}
		})
	}
}

func TestIsDescendant(t *testing.T) {
	tree := Build(sampleContent())
	declarations, _ := tree.FindByEntityID(KindLesson, 7)
	variables, _ := tree.FindByEntityID(KindSubTopic, 10)
	syntax, _ := tree.FindByEntityID(KindTopic, 1)
	tooling, _ := tree.FindByEntityID(KindTopic, 2)

	if !tree.isDescendant(syntax, declarations) {
		t.Error("lesson under subtopic under topic should be a descendant of the topic")
	}
	if !tree.isDescendant(variables, declarations) {
		t.Error("lesson should be a descendant of its subtopic")
	}
	if tree.isDescendant(tooling, declarations) {
		t.Error("lesson is not under the sibling topic")
	}
	if tree.isDescendant(declarations, syntax) {
		t.Error("descendant relation is not symmetric")
	}
}
