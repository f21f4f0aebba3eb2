package bot

import (
	"context"
	"log"
	"time"

	"github.com/keshon/chatclick/internal/storage"
	"github.com/keshon/chatclick/pkg/command"
)

// WithHistory records every successful invocation into the guild history.
func WithHistory(store *storage.Storage) command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(ctx context.Context, inv *command.Invocation) error {
			err := next(ctx, inv)
			if err != nil {
				return err
			}

			mc, ok := FromData(inv.Data)
			if !ok || store == nil {
				return nil
			}
			rec := storage.InvocationRecord{
				ChannelID: mc.Event.ChannelID,
				UserID:    mc.Event.Author.ID,
				Username:  mc.Event.Author.Username,
				Command:   inv.Command,
				Datetime:  time.Now(),
			}
			if e := store.RecordInvocation(mc.Event.GuildID, rec); e != nil {
				log.Printf("[WARN] Failed to record /%s: %v", inv.Command, e)
			}
			return nil
		}
	}
}

// RateLimitKey keys the rate limit middleware by Discord user ID.
func RateLimitKey(inv *command.Invocation) string {
	mc, ok := FromData(inv.Data)
	if !ok || mc.Event.Author == nil {
		return ""
	}
	return mc.Event.Author.ID
}
