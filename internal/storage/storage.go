// Package storage persists per-guild bot state: a capped history of command
// invocations used by the stats command.
package storage

import (
	"fmt"
	"time"

	"github.com/keshon/chatclick/datastore"
)

const historyLimit = 50

// InvocationRecord is one executed command.
type InvocationRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

type guildRecord struct {
	History []InvocationRecord `json:"cmd_history"`
}

// Storage wraps the datastore with guild-scoped accessors.
type Storage struct {
	ds *datastore.DataStore
}

// New opens the storage file at path.
func New(path string) (*Storage, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

func guildKey(guildID string) string {
	if guildID == "" {
		guildID = "dm"
	}
	return "guild:" + guildID
}

// RecordInvocation appends an invocation to the guild history, dropping the
// oldest entries beyond the cap.
func (s *Storage) RecordInvocation(guildID string, rec InvocationRecord) error {
	key := guildKey(guildID)

	var record guildRecord
	if _, err := s.ds.Get(key, &record); err != nil {
		return fmt.Errorf("load guild record: %w", err)
	}

	record.History = append(record.History, rec)
	if len(record.History) > historyLimit {
		record.History = record.History[len(record.History)-historyLimit:]
	}
	return s.ds.Put(key, record)
}

// History returns the recorded invocations of a guild, oldest first.
func (s *Storage) History(guildID string) ([]InvocationRecord, error) {
	var record guildRecord
	if _, err := s.ds.Get(guildKey(guildID), &record); err != nil {
		return nil, fmt.Errorf("load guild record: %w", err)
	}
	return record.History, nil
}
