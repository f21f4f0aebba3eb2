package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/internal/config"
	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/command"
	"github.com/keshon/chatclick/pkg/permission"
)

func statsCommand(cfg *config.Config) *command.Command {
	return &command.Command{
		Names:       []string{"stats"},
		Description: "Show the most recent command invocations in this guild.",
		Category:    "Information",
		Hidden:      true,
		Permission:  permission.Or(bot.Developer(cfg.DeveloperID), bot.GuildAdmin()),
		Arguments: []*argument.Argument{
			{
				Names:       []string{"limit", "l"},
				Description: "how many entries to show",
				Example:     "10",
				Kind:        argument.Int,
				Validator: func(v any) bool {
					n := v.(int)
					return n >= 1 && n <= 25
				},
				Optional: true,
				Default:  10,
			},
		},
		Handler: func(_ context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}

			history, err := mc.Store.History(mc.Event.GuildID)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(history) == 0 {
				bot.Reply(mc, "No commands recorded yet.")
				return nil
			}

			limit := inv.Int("limit")
			if len(history) > limit {
				history = history[len(history)-limit:]
			}

			var sb strings.Builder
			sb.WriteString("**Recent commands:**\n")
			for i := len(history) - 1; i >= 0; i-- {
				rec := history[i]
				fmt.Fprintf(&sb, "`%s` /%s by %s\n",
					rec.Datetime.Format("2006-01-02 15:04"), rec.Command, rec.Username)
			}
			bot.Reply(mc, sb.String())
			return nil
		},
	}
}
