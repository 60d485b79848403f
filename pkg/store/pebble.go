package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"minihttpd/pkg/logger"
	"minihttpd/pkg/models"
)

// Pebble is a durable Store backed by a Pebble database. Keys are
// "user:<account>", values JSON-encoded users. Pebble handles its own
// locking, so no extra synchronization is needed here.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the database at path.
func OpenPebble(path string) (*Pebble, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("store_open_failed", "path", path, "error", err)
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	logger.Info("store_opened", "path", path)
	return &Pebble{db: db}, nil
}

func userKey(account string) []byte {
	return []byte("user:" + account)
}

func (p *Pebble) FindByAccount(account string) (models.User, bool) {
	val, closer, err := p.db.Get(userKey(account))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			logger.Error("user_lookup_failed", "account", account, "error", err)
		}
		return models.User{}, false
	}
	defer closer.Close()

	var u models.User
	if err := json.Unmarshal(val, &u); err != nil {
		logger.Error("user_decode_failed", "account", account, "error", err)
		return models.User{}, false
	}
	return u, true
}

func (p *Pebble) Save(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", user.Account, err)
	}
	if err := p.db.Set(userKey(user.Account), data, pebble.Sync); err != nil {
		logger.Error("user_save_failed", "account", user.Account, "error", err)
		return err
	}
	logger.Info("user_saved", "account", user.Account)
	return nil
}

func (p *Pebble) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	logger.Info("store_closed")
	return err
}
