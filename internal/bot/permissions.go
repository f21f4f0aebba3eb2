package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/chatclick/pkg/permission"
)

// GuildAdmin is granted to guild administrators and the guild owner.
// Direct messages pass, mirroring "admin of a private chat is yourself".
func GuildAdmin() *permission.Permission {
	return permission.New("guild admin", func(_ context.Context, data any) (bool, error) {
		mc, ok := FromData(data)
		if !ok {
			return false, nil
		}
		m := mc.Event
		if m.GuildID == "" {
			return true, nil
		}
		if m.Author == nil {
			return false, nil
		}
		return isAdministrator(mc.Session, m.GuildID, m.ChannelID, m.Author.ID)
	})
}

func isAdministrator(s *discordgo.Session, guildID, channelID, userID string) (bool, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return false, fmt.Errorf("fetch guild %s: %w", guildID, err)
		}
	}
	if guild.OwnerID == userID {
		return true, nil
	}

	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, fmt.Errorf("fetch permissions for %s: %w", userID, err)
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

// GuildOnly is granted only inside a guild (no direct messages).
func GuildOnly() *permission.Permission {
	return permission.New("guild chat", func(_ context.Context, data any) (bool, error) {
		mc, ok := FromData(data)
		return ok && mc.Event.GuildID != "", nil
	})
}

// DMOnly is granted only in a direct message.
func DMOnly() *permission.Permission {
	return permission.New("direct message", func(_ context.Context, data any) (bool, error) {
		mc, ok := FromData(data)
		return ok && mc.Event.GuildID == "", nil
	})
}

// UserID is granted to the given user IDs.
func UserID(ids ...string) *permission.Permission {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return permission.New("specific user", func(_ context.Context, data any) (bool, error) {
		mc, ok := FromData(data)
		if !ok || mc.Event.Author == nil {
			return false, nil
		}
		_, granted := allowed[mc.Event.Author.ID]
		return granted, nil
	})
}

// Developer is granted to the configured developer account. With no
// developer configured it is granted to no one.
func Developer(developerID string) *permission.Permission {
	if developerID == "" {
		return permission.Nobody()
	}
	return UserID(developerID)
}
