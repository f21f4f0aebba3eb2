// Package argument describes a single command argument: its aliases, value
// kind, conversion, validation, optionality and default. A schema is built
// once at registration time and reused, immutable, for every invocation.
package argument

import (
	"fmt"
	"strings"
)

// Kind selects the built-in converter for an argument value.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Float
	// Custom kinds carry no built-in converter; an explicit Converter is
	// required.
	Custom
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Converter turns raw token text into a typed value.
type Converter func(raw string) (any, error)

// Validator checks a converted value. Returning false rejects the value.
type Validator func(value any) bool

// Argument is the schema for one command argument.
//
// Names holds the accepted aliases; Names[0] is the canonical name used as
// the key in the resolved argument map. Set via struct literal and validated
// by Check at registration time.
type Argument struct {
	Names       []string
	Description string
	Example     string
	Kind        Kind
	Converter   Converter
	Validator   Validator
	Optional    bool
	Default     any
	IsFlag      bool
}

// NewFlag returns a flag argument: boolean, optional, default false, and it
// never consumes a following token. Presence alone sets it to true.
func NewFlag(description string, names ...string) *Argument {
	return &Argument{
		Names:       names,
		Description: description,
		Kind:        Bool,
		Optional:    true,
		Default:     false,
		IsFlag:      true,
	}
}

// NewSelection returns a string argument restricted to the given values.
// The first allowed value doubles as the example.
func NewSelection(description string, allowed []string, names ...string) *Argument {
	example := ""
	if len(allowed) > 0 {
		example = allowed[0]
	}
	return &Argument{
		Names:       names,
		Description: description,
		Example:     example,
		Kind:        String,
		Validator: func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		},
	}
}

// Name returns the canonical name of the argument.
func (a *Argument) Name() string {
	if len(a.Names) == 0 {
		return ""
	}
	return a.Names[0]
}

// Check validates the schema itself. It is called at registration time;
// a failing schema is a programming error, not a per-message condition.
func (a *Argument) Check() error {
	if len(a.Names) == 0 {
		return fmt.Errorf("argument has no names")
	}
	for _, name := range a.Names {
		if name == "" {
			return fmt.Errorf("argument %q has an empty alias", a.Name())
		}
		if strings.ContainsAny(name, " \t=") {
			return fmt.Errorf("argument alias %q contains whitespace or '='", name)
		}
	}
	if a.IsFlag {
		if a.Kind != Bool {
			return fmt.Errorf("flag %q must be of bool kind", a.Name())
		}
		if !a.Optional {
			return fmt.Errorf("flag %q must be optional", a.Name())
		}
	}
	if a.Kind == Custom && a.Converter == nil {
		return fmt.Errorf("argument %q has a custom kind but no converter", a.Name())
	}
	if _, err := a.converter(); err != nil {
		return fmt.Errorf("argument %q: %w", a.Name(), err)
	}
	return nil
}

func (a *Argument) converter() (Converter, error) {
	if a.Converter != nil {
		return a.Converter, nil
	}
	conv, ok := builtinConverters[a.Kind]
	if !ok {
		return nil, fmt.Errorf("no built-in converter for kind %s", a.Kind)
	}
	return conv, nil
}

// Parse converts and validates raw input for this argument. A nil raw means
// the argument was absent: optional arguments fall back to their default,
// required ones fail with MissingRequiredError. Conversion and validation
// failures are both reported as InvalidValueError.
func (a *Argument) Parse(raw *string) (any, error) {
	if raw == nil {
		if a.IsFlag {
			return false, nil
		}
		if a.Optional {
			return a.Default, nil
		}
		return nil, &MissingRequiredError{Argument: a.Name()}
	}

	conv, err := a.converter()
	if err != nil {
		return nil, err
	}
	value, err := conv(*raw)
	if err != nil {
		return nil, &InvalidValueError{Argument: a.Name(), Raw: *raw, Cause: err}
	}
	if a.Validator != nil && !a.Validator(value) {
		return nil, &InvalidValueError{Argument: a.Name(), Raw: *raw, Cause: errValidation}
	}
	return value, nil
}
