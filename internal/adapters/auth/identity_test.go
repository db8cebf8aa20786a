package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbjllc/travelbook/internal/adapters/auth"
	"github.com/lbjllc/travelbook/internal/domain"
)

func TestStatic(t *testing.T) {
	id, ok := auth.Static("u1").CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), id)

	_, ok = auth.Static("").CurrentUser()
	assert.False(t, ok)
}

func TestAnonymousSignInIsStable(t *testing.T) {
	a := auth.NewAnonymous()
	_, ok := a.CurrentUser()
	assert.False(t, ok)

	first, err := a.SignIn(context.Background())
	require.NoError(t, err)
	second, err := a.SignIn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), "anon-"))

	cur, ok := a.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, first, cur)
}
