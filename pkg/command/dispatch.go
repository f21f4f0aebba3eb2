package command

import (
	"context"

	"github.com/keshon/chatclick/pkg/parser"
	"github.com/keshon/chatclick/pkg/tokenize"
)

// Status is the terminal state of one dispatched message.
type Status int

const (
	// StatusSkipped: not a command, an unknown command, or a command
	// addressed to a bot we should not answer for. Silent no-op.
	StatusSkipped Status = iota
	// StatusDenied: the caller failed the permission check.
	StatusDenied
	// StatusInvalid: tokenizing or argument resolution failed.
	StatusInvalid
	// StatusFailed: the handler returned an error.
	StatusFailed
	// StatusInvoked: the handler ran and returned nil.
	StatusInvoked
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusDenied:
		return "denied"
	case StatusInvalid:
		return "invalid"
	case StatusFailed:
		return "failed"
	case StatusInvoked:
		return "invoked"
	}
	return "unknown"
}

// Result reports what Dispatch did with a message.
type Result struct {
	Status  Status
	Command *Command // nil when the message matched no registered command
	Err     error    // the rejection or handler error, nil otherwise
}

// ErrorHandler turns a rejection into user feedback. Handlers are chained;
// returning true marks the rejection as handled and stops the chain.
type ErrorHandler interface {
	// OnPermissionError is called when the caller fails the permission check.
	OnPermissionError(ctx context.Context, data any, cmd *Command) bool
	// OnValidationError is called when argument parsing or validation fails.
	OnValidationError(ctx context.Context, data any, cmd *Command, err error) bool
	// OnExecutionError is called when the handler itself returns an error.
	OnExecutionError(ctx context.Context, data any, cmd *Command, err error) bool
}

// Dispatch runs the full pipeline for one incoming message:
//
//	received -> target filtered -> permission checked -> parsed -> invoked
//
// The pipeline short-circuits on the first failure. A target mismatch and an
// unknown command are silent skips (the message is simply not for us);
// permission, parse and handler failures are distinct rejections reported
// through the registry's error handler chain.
//
// selfName is this bot's username, matched against "@target" suffixes; data
// is the adapter payload handed through to predicates and the handler.
func (r *Registry) Dispatch(ctx context.Context, selfName, text string, data any) Result {
	cmdTok, argText := parser.SplitCommandFromArgs(text)
	name, ok := parser.CommandName(cmdTok)
	if !ok {
		return Result{Status: StatusSkipped}
	}
	cmd, found := r.byName[name]
	if !found {
		return Result{Status: StatusSkipped}
	}

	_, target := parser.SplitCommandFromTarget(cmdTok)
	if !parser.FilterTarget(target, selfName, cmd.Target) {
		return Result{Status: StatusSkipped, Command: cmd}
	}

	if cmd.Permission != nil {
		granted, err := cmd.Permission.Evaluate(ctx, data)
		if err != nil || !granted {
			r.reportPermission(ctx, data, cmd)
			return Result{Status: StatusDenied, Command: cmd, Err: err}
		}
	}

	values, err := parseArgs(argText, cmd)
	if err != nil {
		r.reportValidation(ctx, data, cmd, err)
		return Result{Status: StatusInvalid, Command: cmd, Err: err}
	}

	inv := &Invocation{Command: name, Args: values, Data: data}
	if err := cmd.run(ctx, inv); err != nil {
		r.reportExecution(ctx, data, cmd, err)
		return Result{Status: StatusFailed, Command: cmd, Err: err}
	}
	return Result{Status: StatusInvoked, Command: cmd}
}

func parseArgs(argText string, cmd *Command) (map[string]any, error) {
	tokens, err := tokenize.Split(argText)
	if err != nil {
		return nil, err
	}
	return parser.Resolve(tokens, cmd.Arguments)
}

func (r *Registry) reportPermission(ctx context.Context, data any, cmd *Command) {
	for _, h := range r.handlers {
		if h.OnPermissionError(ctx, data, cmd) {
			return
		}
	}
}

func (r *Registry) reportValidation(ctx context.Context, data any, cmd *Command, err error) {
	for _, h := range r.handlers {
		if h.OnValidationError(ctx, data, cmd, err) {
			return
		}
	}
}

func (r *Registry) reportExecution(ctx context.Context, data any, cmd *Command, err error) {
	for _, h := range r.handlers {
		if h.OnExecutionError(ctx, data, cmd, err) {
			return
		}
	}
}
