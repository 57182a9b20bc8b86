package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"iq-admin/internal/cache"
	"iq-admin/internal/domain"
	"iq-admin/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTestListTTL = 5 * time.Minute

var testListCacheKey = cache.TestListKey()

// TestCatalog serves the list of IQ tests with a read-through cache.
type TestCatalog interface {
	ListTests(ctx context.Context) ([]domain.IQTest, error)
	GetTest(ctx context.Context, testID string) (*domain.IQTest, error)
	CreateTest(ctx context.Context, input domain.IQTestInput) error
	UpdateTest(ctx context.Context, testID string, input domain.IQTestInput) error
	SetTestActive(ctx context.Context, testID string, active bool) error
}

type testCatalogImpl struct {
	backend domain.TestBackend
	cache   domain.Cache // may be nil
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewTestCatalog creates a catalog. cache may be nil, in which case every
// read goes to the backend.
func NewTestCatalog(backend domain.TestBackend, cache domain.Cache, ttl time.Duration) TestCatalog {
	if ttl <= 0 {
		ttl = DefaultTestListTTL
	}
	return &testCatalogImpl{backend: backend, cache: cache, ttl: ttl}
}

func (c *testCatalogImpl) ListTests(ctx context.Context) ([]domain.IQTest, error) {
	log := logger.Get()

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, testListCacheKey)
		if err == nil {
			var tests []domain.IQTest
			errDecode := json.Unmarshal([]byte(cached), &tests)
			if errDecode == nil {
				return tests, nil
			}
			log.Warn("Failed to decode cached test list", zap.String("cacheKey", testListCacheKey), zap.Error(errDecode))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			log.Warn("Failed to read test list from cache", zap.String("cacheKey", testListCacheKey), zap.Error(err))
		}
	}

	res, err, shared := c.sfGroup.Do(testListCacheKey, func() (interface{}, error) {
		tests, fetchErr := c.backend.ListTests(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if c.cache != nil {
			if data, errEncode := json.Marshal(tests); errEncode != nil {
				log.Error("Failed to encode test list for caching", zap.Error(errEncode))
			} else if errSet := c.cache.Set(ctx, testListCacheKey, string(data), c.ttl); errSet != nil {
				log.Warn("Failed to cache test list", zap.String("cacheKey", testListCacheKey), zap.Error(errSet))
			}
		}
		return tests, nil
	})
	if err != nil {
		return nil, err
	}

	tests, ok := res.([]domain.IQTest)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for test list: %T", res)
	}
	if shared {
		// Callers must not alias each other's slice.
		tests = append([]domain.IQTest(nil), tests...)
	}
	return tests, nil
}

// GetTest returns the test with the given id or a TEST_NOT_FOUND error.
func (c *testCatalogImpl) GetTest(ctx context.Context, testID string) (*domain.IQTest, error) {
	tests, err := c.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tests {
		if tests[i].ID.String() == testID {
			t := tests[i]
			return &t, nil
		}
	}
	return nil, domain.NewTestNotFoundError(testID)
}

func (c *testCatalogImpl) CreateTest(ctx context.Context, input domain.IQTestInput) error {
	if err := c.backend.CreateTest(ctx, input); err != nil {
		return err
	}
	c.invalidate(ctx)
	logger.Get().Info("IQ test created", zap.String("title", input.Title))
	return nil
}

func (c *testCatalogImpl) UpdateTest(ctx context.Context, testID string, input domain.IQTestInput) error {
	if err := c.backend.UpdateTest(ctx, testID, input); err != nil {
		return err
	}
	c.invalidate(ctx)
	logger.Get().Info("IQ test updated", zap.String("testID", testID))
	return nil
}

func (c *testCatalogImpl) SetTestActive(ctx context.Context, testID string, active bool) error {
	if err := c.backend.UpdateTestStatus(ctx, testID, active); err != nil {
		return err
	}
	c.invalidate(ctx)
	logger.Get().Info("IQ test status changed", zap.String("testID", testID), zap.Bool("active", active))
	return nil
}

func (c *testCatalogImpl) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, testListCacheKey); err != nil {
		logger.Get().Warn("Failed to invalidate cached test list", zap.String("cacheKey", testListCacheKey), zap.Error(err))
	}
}
