package bot

import (
	"context"
	"fmt"

	"github.com/keshon/chatclick/pkg/command"
)

// ErrorReporter turns dispatch rejections into chat replies. It implements
// command.ErrorHandler.
type ErrorReporter struct {
	// SilentDenial suppresses the "permission denied" reply; the command
	// is ignored as if it did not exist.
	SilentDenial bool
}

// OnPermissionError replies with a denial notice unless SilentDenial is set.
func (r *ErrorReporter) OnPermissionError(_ context.Context, data any, cmd *command.Command) bool {
	mc, ok := FromData(data)
	if !ok {
		return false
	}
	if !r.SilentDenial {
		Reply(mc, "⛔ You do not have permission to use this command.")
	}
	return true
}

// OnValidationError replies with the parse error and the command usage.
func (r *ErrorReporter) OnValidationError(_ context.Context, data any, cmd *command.Command, err error) bool {
	mc, ok := FromData(data)
	if !ok {
		return false
	}
	Reply(mc, fmt.Sprintf("❗ `%v`\n\n%s", err, command.Help(cmd)))
	return true
}

// OnExecutionError replies with a generic failure notice. The underlying
// error stays in the logs.
func (r *ErrorReporter) OnExecutionError(_ context.Context, data any, cmd *command.Command, err error) bool {
	mc, ok := FromData(data)
	if !ok {
		return false
	}
	Reply(mc, "💥 There was an error executing your command.")
	return true
}
