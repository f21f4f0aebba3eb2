package commands

import (
	"context"
	"fmt"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/command"
	"github.com/keshon/chatclick/pkg/permission"
)

func purgeCommand() *command.Command {
	return &command.Command{
		Names:       []string{"purge", "clear"},
		Description: "Bulk-delete recent messages in this channel.",
		Category:    "Moderation",
		Permission:  permission.And(bot.GuildOnly(), bot.GuildAdmin()),
		Arguments: []*argument.Argument{
			{
				Names:       []string{"amount", "a"},
				Description: "how many messages to delete",
				Example:     "10",
				Kind:        argument.Int,
				Validator: func(v any) bool {
					n := v.(int)
					return n >= 1 && n <= 100
				},
			},
		},
		Handler: func(_ context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}

			amount := inv.Int("amount")
			msgs, err := mc.Session.ChannelMessages(mc.Event.ChannelID, amount, mc.Event.ID, "", "")
			if err != nil {
				return fmt.Errorf("list messages: %w", err)
			}
			ids := make([]string, 0, len(msgs)+1)
			ids = append(ids, mc.Event.ID)
			for _, msg := range msgs {
				ids = append(ids, msg.ID)
			}
			if err := mc.Session.ChannelMessagesBulkDelete(mc.Event.ChannelID, ids); err != nil {
				return fmt.Errorf("bulk delete: %w", err)
			}
			bot.Send(mc, fmt.Sprintf("🧹 Deleted %d messages.", len(ids)-1))
			return nil
		},
	}
}
