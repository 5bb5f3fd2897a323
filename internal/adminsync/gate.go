package adminsync

import (
	"context"
	"sync"
)

// Loginer checks the admin credential against the server
type Loginer interface {
	Login(ctx context.Context, passphrase string) error
}

// Gate caches a successful login for the rest of the session.
// Mutations do not re-validate it.
type Gate struct {
	mu     sync.RWMutex
	login  Loginer
	authed bool
}

func NewGate(login Loginer) *Gate {
	return &Gate{login: login}
}

func (g *Gate) Login(ctx context.Context, passphrase string) error {
	if err := g.login.Login(ctx, passphrase); err != nil {
		return err
	}
	g.mu.Lock()
	g.authed = true
	g.mu.Unlock()
	return nil
}

func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authed
}

func (g *Gate) Logout() {
	g.mu.Lock()
	g.authed = false
	g.mu.Unlock()
}
