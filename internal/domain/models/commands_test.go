package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want CommandType
		args []string
	}{
		{"water 500", CommandWater, []string{"500"}},
		{"/EAU 250 after run", CommandWater, []string{"250", "after", "run"}},
		{"meal 3 1.5", CommandMeal, []string{"3", "1.5"}},
		{"today", CommandToday, nil},
		{"  ", CommandUnknown, nil},
		{"dance now", CommandUnknown, []string{"now"}},
	}

	for _, tc := range tests {
		cmd := ParseCommand(tc.in)
		assert.Equal(t, tc.want, cmd.Type, tc.in)
		assert.Equal(t, tc.args, cmd.Args, tc.in)
		assert.Equal(t, tc.in, cmd.Raw)
	}
}

func TestInboundMessageBody(t *testing.T) {
	assert.Equal(t, "water 500", InboundMessage{Text: &TextContent{Body: "water 500"}}.Body())
	assert.Equal(t, "today", InboundMessage{Interactive: &InteractiveContent{ButtonReply: &ButtonReply{ID: "today"}}}.Body())
	assert.Equal(t, "", InboundMessage{Type: "image"}.Body())
}
