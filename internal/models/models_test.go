package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"users", Step{Kind: StepField, Name: "users"}},
		{"0", Step{Kind: StepIndex, Index: 0, Name: "0"}},
		{"12", Step{Kind: StepIndex, Index: 12, Name: "12"}},
		{"-1", Step{Kind: StepField, Name: "-1"}},
		{".0", Step{Kind: StepField, Name: "0"}},
		{"1a", Step{Kind: StepField, Name: "1a"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStep(tt.in))
		})
	}
}

func TestParseSteps(t *testing.T) {
	steps := ParseSteps("users.1..name")
	assert.Equal(t, []Step{
		{Kind: StepField, Name: "users"},
		{Kind: StepIndex, Index: 1, Name: "1"},
		{Kind: StepField, Name: "name"},
	}, steps)

	assert.Nil(t, ParseSteps(""))
	assert.Equal(t, "[1]", steps[1].String())
	assert.Equal(t, ".users", steps[0].String())
}

func TestMode(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Mode("replace").Valid())

	assert.True(t, Request{Mode: ModeSearch}.NeedsSpec())
	assert.False(t, Request{Mode: ModeGet}.NeedsSpec())
}
