// Package command ties the parsing core together: declarative command
// definitions, a registry with registration-time validation, and a dispatcher
// that runs the full pipeline for an incoming message (target filter,
// permission check, argument resolution, handler invocation).
//
// The package is transport-agnostic. Adapters (Discord, CLI, tests) pass an
// opaque Data payload through to handlers and error handlers.
package command

import (
	"context"

	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/parser"
	"github.com/keshon/chatclick/pkg/permission"
)

// HandlerFunc executes a command with its resolved arguments.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// Command declares a chat command: its names, argument schemas, required
// permission, accepted targets and handler. Built once, registered once,
// then immutable.
type Command struct {
	// Names holds the command name and any aliases; Names[0] is canonical.
	Names       []string
	Description string
	Category    string
	Arguments   []*argument.Argument
	// Permission guards invocation; nil means anybody may run the command.
	Permission *permission.Permission
	// Target selects which "@bot" suffixes are accepted. The zero value
	// defaults to TargetUnspecified|TargetSelf at registration.
	Target parser.CommandTarget
	// Hidden commands are omitted from the generated command list.
	Hidden  bool
	Handler HandlerFunc

	handler HandlerFunc // Handler with registry middleware applied
}

// Name returns the canonical command name.
func (c *Command) Name() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0]
}

func (c *Command) run(ctx context.Context, inv *Invocation) error {
	if c.handler != nil {
		return c.handler(ctx, inv)
	}
	return c.Handler(ctx, inv)
}

// Invocation carries the resolved input of a single command execution:
// the invoked name, the canonical-name -> value argument map, and the
// adapter's opaque payload.
type Invocation struct {
	Command string
	Args    map[string]any
	Data    any
}

// String returns the named argument as a string, or "" when absent.
func (inv *Invocation) String(name string) string {
	v, _ := inv.Args[name].(string)
	return v
}

// Int returns the named argument as an int, or 0 when absent.
func (inv *Invocation) Int(name string) int {
	v, _ := inv.Args[name].(int)
	return v
}

// Float returns the named argument as a float64, or 0 when absent.
func (inv *Invocation) Float(name string) float64 {
	v, _ := inv.Args[name].(float64)
	return v
}

// Bool returns the named argument as a bool, or false when absent.
func (inv *Invocation) Bool(name string) bool {
	v, _ := inv.Args[name].(bool)
	return v
}
