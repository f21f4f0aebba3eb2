package commands

import (
	"context"
	"fmt"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/pkg/command"
)

func pingCommand() *command.Command {
	return &command.Command{
		Names:       []string{"ping"},
		Description: "Check that the bot is alive and report gateway latency.",
		Category:    "Information",
		Handler: func(_ context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}
			latency := mc.Session.HeartbeatLatency()
			bot.Reply(mc, fmt.Sprintf("🏓 Pong! Gateway latency is %dms.", latency.Milliseconds()))
			return nil
		},
	}
}
