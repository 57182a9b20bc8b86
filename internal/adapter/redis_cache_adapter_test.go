package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"iq-admin/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const (
	testListKey   = "iqadmin:catalog:tests:all"
	testListValue = `[{"id":"1","title":"Reasoning"}]`
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(testListKey).SetVal(testListValue)
		val, err := cache.Get(ctx, testListKey)
		assert.NoError(t, err)
		assert.Equal(t, testListValue, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(testListKey).SetErr(redis.Nil)
		val, err := cache.Get(ctx, testListKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(testListKey).SetErr(redisErr)
		_, err := cache.Get(ctx, testListKey)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Writes(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)
	ctx := context.Background()
	redisErr := errors.New("connection reset")

	tests := []struct {
		name    string
		expect  func()
		call    func() error
		wantErr error
	}{
		{
			name:   "Set",
			expect: func() { mock.ExpectSet(testListKey, testListValue, 5*time.Minute).SetVal("OK") },
			call:   func() error { return cache.Set(ctx, testListKey, testListValue, 5*time.Minute) },
		},
		{
			name:    "SetError",
			expect:  func() { mock.ExpectSet(testListKey, testListValue, 5*time.Minute).SetErr(redisErr) },
			call:    func() error { return cache.Set(ctx, testListKey, testListValue, 5*time.Minute) },
			wantErr: redisErr,
		},
		{
			name:   "Delete",
			expect: func() { mock.ExpectDel(testListKey).SetVal(1) },
			call:   func() error { return cache.Delete(ctx, testListKey) },
		},
		{
			name:   "DeleteMissingKey",
			expect: func() { mock.ExpectDel(testListKey).SetVal(0) },
			call:   func() error { return cache.Delete(ctx, testListKey) },
		},
		{
			name:    "DeleteError",
			expect:  func() { mock.ExpectDel(testListKey).SetErr(redisErr) },
			call:    func() error { return cache.Delete(ctx, testListKey) },
			wantErr: redisErr,
		},
		{
			name:   "Ping",
			expect: func() { mock.ExpectPing().SetVal("PONG") },
			call:   func() error { return cache.Ping(ctx) },
		},
		{
			name:    "PingError",
			expect:  func() { mock.ExpectPing().SetErr(redisErr) },
			call:    func() error { return cache.Ping(ctx) },
			wantErr: redisErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()
			err := tt.call()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
