package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Manager keeps the live games, keyed by ID.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
	opts  []Option
}

// NewManager returns a Manager whose games are created with opts.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		games: make(map[string]*Game),
		opts:  opts,
	}
}

// Create starts a new game under a fresh ID. opts are applied after the
// manager's own.
func (m *Manager) Create(opts ...Option) (*Game, error) {
	id := uuid.New().String()

	all := append(append([]Option{}, m.opts...), opts...)
	game, err := NewGame(id, all...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[id] = game
	m.mu.Unlock()

	game.log.Info("game created", "fen", game.FEN())
	return game, nil
}

// Get returns the game with the given ID.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	game, exists := m.games[id]
	if !exists {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	return game, nil
}

// Remove ends the game with the given ID.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	game, exists := m.games[id]
	if !exists {
		return errors.Wrapf(errors.ErrGameNotFound, "game %q", id)
	}
	delete(m.games, id)
	game.log.Info("game removed")
	return nil
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
