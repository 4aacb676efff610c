package application

import (
	"errors"
	"testing"

	"coursecraft/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "Go Basics",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "title",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateKind(t *testing.T) {
	topic := domain.NewTopicNode(&domain.Topic{ID: 1, Title: "Syntax"})
	lesson := domain.NewLessonNode(&domain.Lesson{ID: 7, TopicID: 1, Title: "Declarations"})

	tests := []struct {
		name     string
		node     *domain.Node
		expected []domain.Kind
		wantErr  bool
	}{
		{
			name:     "matching kind",
			node:     topic,
			expected: []domain.Kind{domain.KindTopic},
			wantErr:  false,
		},
		{
			name:     "one of several kinds",
			node:     lesson,
			expected: []domain.Kind{domain.KindTopic, domain.KindLesson},
			wantErr:  false,
		},
		{
			name:     "wrong kind",
			node:     lesson,
			expected: []domain.Kind{domain.KindTopic},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKind("parentKey", tt.node, tt.expected...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKind() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}
