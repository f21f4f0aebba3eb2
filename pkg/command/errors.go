package command

import "fmt"

// DuplicateCommandError reports a command name or alias registered twice.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command name %q registered twice", e.Name)
}

// DuplicateAliasError reports two argument schemas of one command sharing
// an alias.
type DuplicateAliasError struct {
	Command string
	Alias   string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("command %q declares argument alias %q twice", e.Command, e.Alias)
}

// ArgumentOrderError reports a required argument declared after an optional
// one, which would make positional matching ambiguous.
type ArgumentOrderError struct {
	Command  string
	Argument string
}

func (e *ArgumentOrderError) Error() string {
	return fmt.Sprintf("command %q declares required argument %q after an optional one", e.Command, e.Argument)
}
