// Package auth provides the signed-in user to the rest of the core.
package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lbjllc/travelbook/internal/domain"
)

// Static is an identity fixed at construction. An empty id means signed out.
type Static domain.UserID

func (s Static) CurrentUser() (domain.UserID, bool) {
	return domain.UserID(s), s != ""
}

// Anonymous creates a random, stable user id on first sign-in.
type Anonymous struct {
	mu   sync.RWMutex
	user domain.UserID
}

func NewAnonymous() *Anonymous {
	return &Anonymous{}
}

// SignIn is idempotent: later calls keep the first id.
func (a *Anonymous) SignIn(_ context.Context) (domain.UserID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == "" {
		a.user = domain.UserID("anon-" + uuid.NewString())
	}
	return a.user, nil
}

func (a *Anonymous) CurrentUser() (domain.UserID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user, a.user != ""
}
