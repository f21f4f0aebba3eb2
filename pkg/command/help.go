package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/chatclick/pkg/argument"
)

// Help generates the Markdown usage text for a command: synopsis with
// aliases, description, flags, arguments and an example call.
func Help(c *Command) string {
	var flags, args []*argument.Argument
	for _, a := range c.Arguments {
		if a.IsFlag {
			flags = append(flags, a)
		} else {
			args = append(args, a)
		}
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name() < flags[j].Name() })

	lines := []string{
		synopsis(c, len(flags) > 0, len(args) > 0),
		"  " + EscapeMarkdown(c.Description),
	}
	if len(flags) > 0 {
		lines = append(lines, "Flags:")
		for _, f := range flags {
			lines = append(lines, describeArgument(f))
		}
	}
	if len(args) > 0 {
		lines = append(lines, "Arguments:")
		for _, a := range args {
			lines = append(lines, describeArgument(a))
		}
	}
	if len(flags) > 0 || len(args) > 0 {
		lines = append(lines, "Example:", "  "+example(c, flags, args))
	}
	return strings.Join(lines, "\n")
}

func synopsis(c *Command, hasFlags, hasArgs bool) string {
	s := "/" + EscapeMarkdown(c.Name())
	if len(c.Names) > 1 {
		aliases := make([]string, 0, len(c.Names)-1)
		for _, n := range c.Names[1:] {
			aliases = append(aliases, "/"+EscapeMarkdown(n))
		}
		s += fmt.Sprintf(" (%s)", strings.Join(aliases, ", "))
	}
	if hasFlags {
		s += " [[FLAGS]]"
	}
	if hasArgs {
		s += " [[ARGS]]"
	}
	return s
}

func describeArgument(a *argument.Argument) string {
	names := make([]string, 0, len(a.Names))
	for _, n := range a.Names {
		names = append(names, fmt.Sprintf("`%s%s`", keyPrefix(n), n))
	}
	line := "  " + strings.Join(names, ", ")
	if !a.IsFlag {
		line += fmt.Sprintf("\t\t`%s`", strings.ToUpper(a.Kind.String()))
	}
	line += "\t\t" + EscapeMarkdown(a.Description)
	if a.Optional && !a.IsFlag {
		line += fmt.Sprintf("\t(`%v`)", a.Default)
	}
	return line
}

func example(c *Command, flags, args []*argument.Argument) string {
	parts := make([]string, 0, len(flags)+len(args)+1)
	parts = append(parts, "/"+c.Name())
	for _, f := range flags {
		parts = append(parts, keyPrefix(f.Name())+f.Name())
	}
	for _, a := range args {
		parts = append(parts, a.Example)
	}
	return fmt.Sprintf("`%s`", strings.TrimSpace(strings.Join(parts, " ")))
}

func keyPrefix(name string) string {
	if len(name) == 1 {
		return "-"
	}
	return "--"
}

// EscapeMarkdown escapes text for use as plain text in a Markdown message.
func EscapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "*", `\*`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// CommandList renders the help text of every command the caller may see:
// hidden commands and commands whose permission check fails are filtered
// out, the rest are sorted by canonical name.
func (r *Registry) CommandList(ctx context.Context, data any) string {
	if len(r.commands) == 0 {
		return "This bot does not have any commands."
	}

	var visible []*Command
	for _, c := range r.commands {
		if c.Hidden {
			continue
		}
		if c.Permission != nil {
			granted, err := c.Permission.Evaluate(ctx, data)
			if err != nil || !granted {
				continue
			}
		}
		visible = append(visible, c)
	}
	if len(visible) == 0 {
		return "You do not have permission to use commands."
	}
	sort.Slice(visible, func(i, j int) bool {
		return strings.ToLower(visible[i].Name()) < strings.ToLower(visible[j].Name())
	})

	sections := make([]string, 0, len(visible))
	for _, c := range visible {
		sections = append(sections, Help(c))
	}
	return strings.Join(sections, "\n\n")
}
