package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gestion/backend/internal/domain/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisSessionStoreWithClient(client, time.Hour), mr
}

func TestRedisSessionStore_PutGet(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)
	session.Lines = []document.Line{
		document.ComputeLine(func() document.Line {
			line := document.NewEmptyLine(1, document.LineTypeProduct)
			line.Name = "Widget"
			line.Quantity = decimal.NewFromInt(3)
			line.UnitPrice = decimal.NewFromInt(10)
			line.TaxRate = decimal.NewFromInt(21)
			return line
		}()),
	}

	require.NoError(t, store.Put(ctx, session))

	loaded, err := store.Get(ctx, session.TenantID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, "Widget", loaded.Lines[0].Name)
	// decimals survive the JSON round trip
	assert.Equal(t, "30", loaded.Lines[0].Subtotal.String())
}

func TestRedisSessionStore_MissingSession(t *testing.T) {
	store, _ := newRedisStore(t)

	_, err := store.Get(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestRedisSessionStore_TenantScopedKeys(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)
	require.NoError(t, store.Put(ctx, session))

	// same session ID under another tenant resolves to a different key
	_, err := store.Get(ctx, uuid.New(), session.ID)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestRedisSessionStore_Delete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)
	require.NoError(t, store.Put(ctx, session))

	require.NoError(t, store.Delete(ctx, session.TenantID, session.ID))

	_, err := store.Get(ctx, session.TenantID, session.ID)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestRedisSessionStore_TTLExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)
	require.NoError(t, store.Put(ctx, session))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, session.TenantID, session.ID)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}
