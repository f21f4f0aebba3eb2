package command

import (
	"fmt"

	"github.com/keshon/chatclick/pkg/parser"
)

// Registry holds the registered commands of one bot instance. It is created
// and populated during startup and read-only afterwards; registration
// failures are programming errors meant to abort startup.
type Registry struct {
	commands    []*Command
	byName      map[string]*Command
	middlewares []Middleware
	handlers    []ErrorHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Use appends middleware applied to every subsequently registered command.
func (r *Registry) Use(mws ...Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

// AddErrorHandler appends a handler to the rejection-reporting chain walked
// by Dispatch. The first handler returning true stops the chain.
func (r *Registry) AddErrorHandler(hs ...ErrorHandler) {
	r.handlers = append(r.handlers, hs...)
}

// Register validates and adds commands. Name clashes, duplicate argument
// aliases, bad schemas and required-after-optional ordering all fail here,
// at startup, never at message time.
func (r *Registry) Register(cmds ...*Command) error {
	for _, c := range cmds {
		if err := r.register(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) register(c *Command) error {
	if len(c.Names) == 0 {
		return fmt.Errorf("command has no names")
	}
	if c.Handler == nil {
		return fmt.Errorf("command %q has no handler", c.Name())
	}
	for _, name := range c.Names {
		if name == "" {
			return fmt.Errorf("command %q has an empty alias", c.Name())
		}
		if _, clash := r.byName[name]; clash {
			return &DuplicateCommandError{Name: name}
		}
	}

	if err := checkArguments(c); err != nil {
		return err
	}

	if c.Target == 0 {
		c.Target = parser.TargetUnspecified | parser.TargetSelf
	}
	c.handler = Apply(c.Handler, r.middlewares...)

	r.commands = append(r.commands, c)
	for _, name := range c.Names {
		r.byName[name] = c
	}
	return nil
}

func checkArguments(c *Command) error {
	aliases := make(map[string]struct{})
	optionalSeen := false
	for _, a := range c.Arguments {
		if err := a.Check(); err != nil {
			return fmt.Errorf("command %q: %w", c.Name(), err)
		}
		for _, alias := range a.Names {
			if _, dup := aliases[alias]; dup {
				return &DuplicateAliasError{Command: c.Name(), Alias: alias}
			}
			aliases[alias] = struct{}{}
		}
		if !a.Optional && optionalSeen {
			return &ArgumentOrderError{Command: c.Name(), Argument: a.Name()}
		}
		if a.Optional {
			optionalSeen = true
		}
	}
	return nil
}

// Get returns the command registered under the given name or alias.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// All returns the registered commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}
