// Package bot adapts the command core to Discord: it feeds incoming messages
// into the registry dispatcher, maps permission leaves onto Discord concepts
// and turns rejections into chat replies.
package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/chatclick/internal/config"
	"github.com/keshon/chatclick/internal/storage"
	"github.com/keshon/chatclick/pkg/command"
)

// MessageContext is the payload handed through Dispatch to handlers,
// permission predicates and error handlers.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Store   *storage.Storage
}

// FromData extracts the MessageContext from an opaque dispatch payload.
func FromData(data any) (*MessageContext, bool) {
	mc, ok := data.(*MessageContext)
	return mc, ok
}

// Bot runs a Discord session wired to a command registry.
type Bot struct {
	cfg      *config.Config
	registry *command.Registry
	store    *storage.Storage
	session  *discordgo.Session
}

// New creates the bot and its Discord session.
func New(cfg *config.Config, registry *command.Registry, store *storage.Storage) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &Bot{cfg: cfg, registry: registry, store: store, session: session}, nil
}

// Run opens the gateway connection and blocks until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.onMessageCreate(ctx, s, m)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	log.Printf("[INFO] Connected as %s", b.session.State.User.Username)

	<-ctx.Done()
	return b.session.Close()
}

func (b *Bot) onMessageCreate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	mc := &MessageContext{Session: s, Event: m, Store: b.store}
	res := b.registry.Dispatch(ctx, s.State.User.Username, m.Content, mc)

	switch res.Status {
	case command.StatusSkipped:
		// Not ours; stay quiet.
	case command.StatusInvoked:
		log.Printf("[INFO] /%s by %s in %s", res.Command.Name(), m.Author.Username, m.ChannelID)
	default:
		log.Printf("[WARN] /%s by %s %s: %v", res.Command.Name(), m.Author.Username, res.Status, res.Err)
	}
}

// Reply sends a message to the channel of the triggering message,
// as a reply to it.
func Reply(mc *MessageContext, text string) {
	_, err := mc.Session.ChannelMessageSendReply(mc.Event.ChannelID, text, mc.Event.Reference())
	if err != nil {
		log.Printf("[WARN] Failed to send reply: %v", err)
	}
}

// Send sends a plain message to the channel of the triggering message.
func Send(mc *MessageContext, text string) {
	if _, err := mc.Session.ChannelMessageSend(mc.Event.ChannelID, text); err != nil {
		log.Printf("[WARN] Failed to send message: %v", err)
	}
}
