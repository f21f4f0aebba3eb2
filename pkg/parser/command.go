// Package parser turns raw command text into resolved, typed argument values.
// It splits a message into command, target and argument text, and maps
// tokenized argument text onto a list of argument schemas.
package parser

import "strings"

// CommandMarker is the character a command must start with.
const CommandMarker = "/"

// TargetSeparator separates the command name from the addressed bot name
// ("/cmd@somebot").
const TargetSeparator = "@"

// CommandTarget is a bitmask of accepted command target classifications.
type CommandTarget uint8

const (
	// TargetUnspecified matches commands without an "@" suffix.
	TargetUnspecified CommandTarget = 1 << iota
	// TargetSelf matches commands explicitly addressed to this bot.
	TargetSelf
	// TargetOther matches commands addressed to another bot.
	TargetOther

	// TargetAny accepts all of the above.
	TargetAny = TargetUnspecified | TargetSelf | TargetOther
)

// SplitCommandFromArgs splits message text into the command token (including
// any target suffix) and the remaining argument text, on the first
// whitespace run.
func SplitCommandFromArgs(text string) (command, args string) {
	text = strings.TrimSpace(text)
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimLeft(text[i:], " \t")
}

// SplitCommandFromTarget splits the "@target" suffix off a command token.
// The returned target is empty when no "@" is present, keeping an
// unaddressed command distinguishable from one addressed to this bot.
func SplitCommandFromTarget(command string) (name, target string) {
	if i := strings.Index(command, TargetSeparator); i >= 0 {
		return command[:i], command[i+1:]
	}
	return command, ""
}

// ResolveTarget splits the target off a command token, defaulting the target
// to selfName when the command carries none.
func ResolveTarget(selfName, command string) (name, target string) {
	name, target = SplitCommandFromTarget(command)
	if target == "" {
		target = selfName
	}
	return name, target
}

// ClassifyTarget maps a raw target (possibly empty) to its CommandTarget bit.
func ClassifyTarget(target, selfName string) CommandTarget {
	switch target {
	case "":
		return TargetUnspecified
	case selfName:
		return TargetSelf
	default:
		return TargetOther
	}
}

// FilterTarget reports whether a command with the given raw target should be
// processed under the allowed target mask.
func FilterTarget(target, selfName string, allowed CommandTarget) bool {
	return ClassifyTarget(target, selfName)&allowed != 0
}

// CommandName extracts the bare command name from a command token: the
// marker must be present and is stripped, and any target suffix is dropped.
// ok is false when the token is not a command at all.
func CommandName(command string) (name string, ok bool) {
	if !strings.HasPrefix(command, CommandMarker) {
		return "", false
	}
	name, _ = SplitCommandFromTarget(command[len(CommandMarker):])
	if name == "" {
		return "", false
	}
	return name, true
}
