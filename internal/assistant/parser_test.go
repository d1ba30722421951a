package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/assistant-bot/internal/assistant"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"add John 1234567890", "add", []string{"John", "1234567890"}},
		{"  ADD   John\t1234567890  ", "add", []string{"John", "1234567890"}},
		{"Show-Birthday John", "show-birthday", []string{"John"}},
		{"all", "all", []string{}},
		{"phone JOHN", "phone", []string{"JOHN"}},
		{"", "", nil},
		{"   \t ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, args := assistant.ParseInput(tt.line)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestIsExit(t *testing.T) {
	for _, c := range []string{"close", "exit", "quit"} {
		assert.True(t, assistant.IsExit(c), c)
	}
	for _, c := range []string{"", "bye", "hello", "EXIT"} {
		assert.False(t, assistant.IsExit(c), c)
	}
}
