// Package persist sends updated coin totals to the account backend.
//
// Saving is best-effort by design: the local balance is updated first and a
// failed save is dropped without retry. The Saver interface keeps that
// policy swappable without touching simulation code.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Saver persists a player's absolute coin total.
type Saver interface {
	SaveCoins(username string, total int) error
}

// HTTPSaver posts coin totals to the account service.
type HTTPSaver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSaver creates a saver targeting the account service at baseURL.
func NewHTTPSaver(baseURL string) *HTTPSaver {
	return &HTTPSaver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type coinUpdate struct {
	Username string `json:"username"`
	Coins    int    `json:"coins"`
}

// SaveCoins posts the new absolute total for username.
func (s *HTTPSaver) SaveCoins(username string, total int) error {
	body, err := json.Marshal(coinUpdate{Username: username, Coins: total})
	if err != nil {
		return fmt.Errorf("failed to encode coin update: %w", err)
	}

	resp, err := s.client.Post(s.baseURL+"/update-coins", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post coin update: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coin update rejected: %s", resp.Status)
	}
	return nil
}

// NopSaver discards coin updates. Used for offline play.
type NopSaver struct{}

// SaveCoins implements Saver and does nothing.
func (NopSaver) SaveCoins(string, int) error { return nil }

// SaveAsync fires a save in the background and drops any failure after
// logging it. This is the at-most-once boundary the scene driver calls at
// level completion.
func SaveAsync(s Saver, logger *log.Logger, username string, total int) {
	go func() {
		if err := s.SaveCoins(username, total); err != nil {
			logger.Debug("coin save dropped", "username", username, "total", total, "err", err)
		}
	}()
}
