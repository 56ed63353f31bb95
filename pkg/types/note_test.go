package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRichContent_PlainText(t *testing.T) {
	tests := []struct {
		name    string
		content RichContent
		want    string
	}{
		{
			name:    "empty document",
			content: RichContent{},
			want:    "",
		},
		{
			name: "text runs concatenate",
			content: RichContent{Ops: []RichOp{
				{Insert: "Hello "},
				{Insert: "world", Attributes: map[string]any{"bold": true}},
			}},
			want: "Hello world",
		},
		{
			name: "embeds are skipped",
			content: RichContent{Ops: []RichOp{
				{Insert: "before "},
				{Insert: map[string]any{"image": "pic.png"}},
				{Insert: "after"},
			}},
			want: "before after",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.content.PlainText())
		})
	}
}

func TestRichContent_PlainTextSnippet(t *testing.T) {
	content := RichContent{Ops: []RichOp{{Insert: "abcdefghij"}}}

	assert.Equal(t, "abcde", content.PlainTextSnippet(5))
	assert.Equal(t, "abcdefghij", content.PlainTextSnippet(10))
	assert.Equal(t, "abcdefghij", content.PlainTextSnippet(100))
}

func TestValidGoalStatus(t *testing.T) {
	assert.True(t, ValidGoalStatus(GoalStatusActive))
	assert.True(t, ValidGoalStatus(GoalStatusCompleted))
	assert.True(t, ValidGoalStatus(GoalStatusOnHold))
	assert.False(t, ValidGoalStatus(""))
	assert.False(t, ValidGoalStatus("paused"))
}
