// Package session holds the per-player state that outlives a single level
// attempt: the username and the coin balance.
//
// The session is created by the application driver and passed explicitly
// into every scene that needs it; nothing reads it through package globals.
package session

// Session is the current player's identity and coin balance.
type Session struct {
	Username string
	coins    int
}

// New creates a session for username with a starting balance.
func New(username string, coins int) *Session {
	return &Session{Username: username, coins: coins}
}

// Coins returns the current balance.
func (s *Session) Coins() int {
	return s.coins
}

// AddCoins adds earned coins to the balance and returns the new total.
// The total is what gets persisted (an absolute value, not a delta).
func (s *Session) AddCoins(earned int) int {
	s.coins += earned
	return s.coins
}
