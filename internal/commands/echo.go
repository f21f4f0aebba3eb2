package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/command"
)

func echoCommand() *command.Command {
	return &command.Command{
		Names:       []string{"echo", "say"},
		Description: "Repeat a piece of text back into the chat.",
		Category:    "Fun",
		Arguments: []*argument.Argument{
			{
				Names:       []string{"text", "t"},
				Description: "the text to repeat",
				Example:     "\"hello there\"",
			},
			{
				Names:       []string{"times", "n"},
				Description: "how many times to repeat it",
				Example:     "3",
				Kind:        argument.Int,
				Validator: func(v any) bool {
					n := v.(int)
					return n >= 1 && n <= 10
				},
				Optional: true,
				Default:  1,
			},
			argument.NewFlag("repeat the text in upper case", "upper", "u"),
			argument.NewFlag("repeat the text reversed", "reverse", "r"),
		},
		Handler: func(_ context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}

			text := inv.String("text")
			if inv.Bool("reverse") {
				text = reverse(text)
			}
			if inv.Bool("upper") {
				text = strings.ToUpper(text)
			}

			lines := make([]string, inv.Int("times"))
			for i := range lines {
				lines[i] = text
			}
			bot.Reply(mc, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
