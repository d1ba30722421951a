package assistant

import (
	"fmt"

	"github.com/tartampluch/assistant-bot/internal/config"
)

// ArityError reports a command called with the wrong number of arguments.
type ArityError struct {
	Command string
	Want    int
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: %s expects %d, got %d", config.ErrArity, e.Command, e.Want, e.Got)
}

// expectArgs fails unless args holds exactly n values.
func expectArgs(command string, args []string, n int) error {
	if len(args) != n {
		return &ArityError{Command: command, Want: n, Got: len(args)}
	}
	return nil
}
