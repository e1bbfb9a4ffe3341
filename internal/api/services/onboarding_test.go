package services

import (
	"context"
	"testing"

	"github.com/rohits-web03/vybr8r/internal/identity"
	"github.com/rohits-web03/vybr8r/internal/logger"
	"github.com/rohits-web03/vybr8r/internal/models"
	"github.com/rohits-web03/vybr8r/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOnboarded_Model(t *testing.T) {
	name, handle, blank := "Bob", "bob", "  "
	assert.False(t, IsOnboarded(nil))
	assert.False(t, IsOnboarded(&models.User{}))
	assert.False(t, IsOnboarded(&models.User{Handle: &handle}))
	assert.False(t, IsOnboarded(&models.User{Username: &blank, Handle: &handle}))
	assert.True(t, IsOnboarded(&models.User{Username: &name, Handle: &handle}))
}

func TestOnboarding_CompleteAndStatus(t *testing.T) {
	store := repositories.NewMemoryStore()
	_, err := store.SeedDefaults(context.Background())
	require.NoError(t, err)
	r := newResolver(store)
	o := NewOnboarding(store, logger.Discard())
	ctx := context.Background()

	u, _, err := r.ResolveWallet(ctx, wallet)
	require.NoError(t, err)

	onboarded, err := o.Status(ctx, wallet)
	require.NoError(t, err)
	assert.False(t, onboarded)

	bio := "gm"
	updated, err := o.Complete(ctx, u.ID, ProfileInput{
		Username:  " Bob ",
		Handle:    "Bob",
		Bio:       &bio,
		Interests: []string{"Music"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", models.Str(updated.Username))
	assert.Equal(t, "bob", models.Str(updated.Handle))
	assert.Equal(t, "gm", models.Str(updated.Bio))
	assert.Equal(t, models.PlaceholderImage, updated.Avatar)

	onboarded, err = o.Status(ctx, wallet)
	require.NoError(t, err)
	assert.True(t, onboarded)
}

func TestOnboarding_HandleOwnedByAnotherUser(t *testing.T) {
	store := repositories.NewMemoryStore()
	r := newResolver(store)
	o := NewOnboarding(store, logger.Discard())
	ctx := context.Background()

	alice, _, err := r.ResolveWallet(ctx, "0x00000000000000000000000000000000000000a1")
	require.NoError(t, err)
	bob, _, err := r.ResolveWallet(ctx, "0x00000000000000000000000000000000000000b2")
	require.NoError(t, err)

	_, err = o.Complete(ctx, alice.ID, ProfileInput{Username: "Alice", Handle: "alice"})
	require.NoError(t, err)

	_, err = o.Complete(ctx, bob.ID, ProfileInput{Username: "Bob", Handle: "alice"})
	assert.ErrorIs(t, err, ErrHandleTaken)

	reloaded, err := r.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Handle)
	assert.Nil(t, reloaded.Username)

	// Re-submitting your own handle is fine.
	_, err = o.Complete(ctx, alice.ID, ProfileInput{Username: "Alice B", Handle: "alice"})
	assert.NoError(t, err)
}

func TestOnboarding_Validation(t *testing.T) {
	store := repositories.NewMemoryStore()
	o := NewOnboarding(store, logger.Discard())
	u, _, err := newResolver(store).ResolveWallet(context.Background(), wallet)
	require.NoError(t, err)

	_, err = o.Complete(context.Background(), u.ID, ProfileInput{Username: "   ", Handle: "bob"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = o.Complete(context.Background(), u.ID, ProfileInput{Username: "Bob", Handle: "b"})
	assert.ErrorIs(t, err, identity.ErrInvalidHandle)

	_, err = o.Status(context.Background(), "0x00000000000000000000000000000000000000ff")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = o.Status(context.Background(), "")
	assert.ErrorIs(t, err, identity.ErrAddressRequired)
}
