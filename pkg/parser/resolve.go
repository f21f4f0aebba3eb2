package parser

import (
	"strings"

	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/tokenize"
)

// ValueSeparator joins a named key to its inline value ("--name=value").
const ValueSeparator = "="

// namingPrefixes mark a token as a named-argument key. The long form is
// checked first so "--x" strips to "x", not "-x".
var namingPrefixes = []string{"--", "-"}

func isKey(tok tokenize.Token) bool {
	return !tok.Quoted() && hasNamingPrefix(tok.Raw())
}

func hasNamingPrefix(s string) bool {
	for _, p := range namingPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func stripNamingPrefix(s string) string {
	for _, p := range namingPrefixes {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}
	return s
}

// Resolve maps a token stream onto the declared argument schemas and returns
// canonical-name -> converted value, with exactly one entry per schema.
//
// Resolution runs in three passes: named keys first (left to right), then
// positional assignment of the remaining tokens to the remaining non-flag
// schemas in declaration order, then defaulting for whatever is still
// unsatisfied. Excess positional tokens are ignored; unknown named keys are
// an error. Once a schema is matched by name, all its aliases leave the pool.
func Resolve(tokens []tokenize.Token, args []*argument.Argument) (map[string]any, error) {
	pool := make(map[string]*argument.Argument, len(args))
	for _, a := range args {
		for _, name := range a.Names {
			pool[name] = a
		}
	}

	values := make(map[string]any, len(args))
	used := make([]bool, len(tokens))

	satisfy := func(a *argument.Argument, raw *string) error {
		v, err := a.Parse(raw)
		if err != nil {
			return err
		}
		values[a.Name()] = v
		for _, name := range a.Names {
			delete(pool, name)
		}
		return nil
	}

	// Named pass.
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isKey(tok) {
			continue
		}
		used[i] = true

		key := stripNamingPrefix(tok.Raw())
		name := key
		var inline *string
		if j := strings.Index(key, ValueSeparator); j >= 0 {
			name = key[:j]
			v := key[j+1:]
			inline = &v
		}

		arg, ok := pool[name]
		if !ok {
			if inline == nil {
				bundled, err := resolveBundle(name, pool, satisfy)
				if err != nil {
					return nil, err
				}
				if bundled {
					continue
				}
			}
			return nil, &UnknownArgumentError{Key: tok.Raw()}
		}

		if arg.IsFlag {
			if inline != nil {
				return nil, &argument.InvalidValueError{
					Argument: arg.Name(), Raw: *inline, Cause: errFlagValue,
				}
			}
			raw := "true"
			if err := satisfy(arg, &raw); err != nil {
				return nil, err
			}
			continue
		}

		var raw string
		switch {
		case inline != nil:
			raw = tokenize.Unquote(*inline)
		case i+1 >= len(tokens):
			return nil, &MissingValueError{Key: tok.Raw()}
		case isKey(tokens[i+1]):
			return nil, &MissingValueError{Key: tok.Raw(), Found: tokens[i+1].Raw()}
		default:
			i++
			used[i] = true
			raw = tokens[i].Value()
		}
		if err := satisfy(arg, &raw); err != nil {
			return nil, err
		}
	}

	// Positional pass. Flags are never satisfied positionally; tokens beyond
	// the remaining schemas are ignored.
	for i := 0; i < len(tokens) && len(pool) > 0; i++ {
		if used[i] {
			continue
		}
		arg := nextPositional(args, pool)
		if arg == nil {
			break
		}
		raw := tokens[i].Value()
		if err := satisfy(arg, &raw); err != nil {
			return nil, err
		}
	}

	// Defaulting pass.
	for _, a := range args {
		if _, unsatisfied := pool[a.Name()]; !unsatisfied {
			continue
		}
		if err := satisfy(a, nil); err != nil {
			return nil, err
		}
	}

	return values, nil
}

// resolveBundle handles bundled single-character flags: a key like "fF" where
// every character is itself a declared single-character flag alias sets each
// of those flags to true. Returns false when the key is not a pure bundle.
func resolveBundle(name string, pool map[string]*argument.Argument, satisfy func(*argument.Argument, *string) error) (bool, error) {
	if name == "" {
		return false, nil
	}
	flags := make([]*argument.Argument, 0, len(name))
	for _, r := range name {
		arg, ok := pool[string(r)]
		if !ok || !arg.IsFlag {
			return false, nil
		}
		flags = append(flags, arg)
	}
	raw := "true"
	for _, arg := range flags {
		// A repeated character maps to an already-satisfied schema; setting
		// a flag twice is a no-op.
		if _, still := pool[arg.Name()]; !still {
			continue
		}
		if err := satisfy(arg, &raw); err != nil {
			return false, err
		}
	}
	return true, nil
}

func nextPositional(args []*argument.Argument, pool map[string]*argument.Argument) *argument.Argument {
	for _, a := range args {
		if a.IsFlag {
			continue
		}
		if _, unsatisfied := pool[a.Name()]; unsatisfied {
			return a
		}
	}
	return nil
}

// ParseCommand parses a full message into the bare command name and its
// resolved argument values. The command token must start with the command
// marker; any "@target" suffix is ignored here (target filtering is the
// dispatcher's job).
func ParseCommand(text string, args []*argument.Argument) (string, map[string]any, error) {
	cmdTok, argText := SplitCommandFromArgs(text)
	name, ok := CommandName(cmdTok)
	if !ok {
		return "", nil, ErrNotCommand
	}
	tokens, err := tokenize.Split(argText)
	if err != nil {
		return "", nil, err
	}
	values, err := Resolve(tokens, args)
	if err != nil {
		return "", nil, err
	}
	return name, values, nil
}
