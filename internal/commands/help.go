package commands

import (
	"context"
	"fmt"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/command"
)

func helpCommand(reg *command.Registry) *command.Command {
	return &command.Command{
		Names:       []string{"help", "h"},
		Description: "Show available commands, or the usage of one command.",
		Category:    "Information",
		Arguments: []*argument.Argument{
			{
				Names:       []string{"command", "c"},
				Description: "the command to explain",
				Example:     "roll",
				Optional:    true,
				Default:     "",
			},
		},
		Handler: func(ctx context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}

			name := inv.String("command")
			if name == "" {
				bot.Reply(mc, reg.CommandList(ctx, inv.Data))
				return nil
			}

			cmd, found := reg.Get(name)
			if !found {
				bot.Reply(mc, fmt.Sprintf("Unknown command `/%s`.", command.EscapeMarkdown(name)))
				return nil
			}
			bot.Reply(mc, command.Help(cmd))
			return nil
		},
	}
}
