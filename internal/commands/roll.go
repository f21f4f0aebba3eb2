package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/command"
)

// diceSpec is a parsed dice expression such as "2d20".
type diceSpec struct {
	Count int
	Sides int
}

func (d diceSpec) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

func parseDice(raw string) (any, error) {
	count, sides, found := strings.Cut(strings.ToLower(raw), "d")
	if !found {
		return nil, fmt.Errorf("%q is not a dice expression like 2d6", raw)
	}
	if count == "" {
		count = "1"
	}
	c, err := strconv.Atoi(count)
	if err != nil {
		return nil, fmt.Errorf("dice count %q is not a number", count)
	}
	s, err := strconv.Atoi(sides)
	if err != nil {
		return nil, fmt.Errorf("dice sides %q is not a number", sides)
	}
	return diceSpec{Count: c, Sides: s}, nil
}

func rollCommand() *command.Command {
	return &command.Command{
		Names:       []string{"roll", "dice"},
		Description: "Roll dice and report the result.",
		Category:    "Fun",
		Arguments: []*argument.Argument{
			{
				Names:       []string{"dice", "d"},
				Description: "the dice to roll, count then sides",
				Example:     "2d20",
				Kind:        argument.Custom,
				Converter:   parseDice,
				Validator: func(v any) bool {
					d := v.(diceSpec)
					return d.Count >= 1 && d.Count <= 20 && d.Sides >= 2 && d.Sides <= 1000
				},
				Optional: true,
				Default:  diceSpec{Count: 1, Sides: 6},
			},
		},
		Handler: func(_ context.Context, inv *command.Invocation) error {
			mc, ok := bot.FromData(inv.Data)
			if !ok {
				return fmt.Errorf("unexpected payload %T", inv.Data)
			}

			dice := inv.Args["dice"].(diceSpec)
			rolls := make([]string, dice.Count)
			total := 0
			for i := range rolls {
				r := rand.Intn(dice.Sides) + 1
				total += r
				rolls[i] = strconv.Itoa(r)
			}
			bot.Reply(mc, fmt.Sprintf("🎲 %s: %s = **%d**", dice, strings.Join(rolls, " + "), total))
			return nil
		},
	}
}
