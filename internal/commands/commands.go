// Package commands holds the bot's built-in commands. Each command is a
// declarative command.Command; RegisterAll wires them into a registry.
package commands

import (
	"github.com/keshon/chatclick/internal/config"
	"github.com/keshon/chatclick/pkg/command"
)

// RegisterAll registers every built-in command. Registration errors are
// programming errors and abort startup.
func RegisterAll(reg *command.Registry, cfg *config.Config) error {
	return reg.Register(
		helpCommand(reg),
		pingCommand(),
		echoCommand(),
		rollCommand(),
		purgeCommand(),
		statsCommand(cfg),
	)
}
