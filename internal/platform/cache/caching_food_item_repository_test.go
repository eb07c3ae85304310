package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/catalog/usecase"
)

type mockFoodItemRepository struct {
	listFn     func(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error)
	findByIDFn func(ctx context.Context, id uint) (*entity.FoodItem, error)
	createFn   func(ctx context.Context, item *entity.FoodItem) error
	saveFn     func(ctx context.Context, item *entity.FoodItem) error
	deleteFn   func(ctx context.Context, id uint) error
	listCalls  int
	findCalls  int
}

func (m *mockFoodItemRepository) List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error) {
	m.listCalls++
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return nil, nil
}

func (m *mockFoodItemRepository) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	m.findCalls++
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrFoodItemNotFound
}

func (m *mockFoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockFoodItemRepository) Save(ctx context.Context, item *entity.FoodItem) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, item)
	}
	return nil
}

func (m *mockFoodItemRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type countingObserver struct{ hits, misses int }

func (o *countingObserver) CacheLookup(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func pizza() *entity.FoodItem {
	return &entity.FoodItem{ID: 3, Name: "Pizza", Description: "Cheese", Category: "main", Price: decimal.RequireFromString("12.50"), IsAvailable: true}
}

func TestNewCachingFoodItemRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingFoodItemRepository(nil, 0, &mockFoodItemRepository{}, "", nil)

	assert.Equal(t, 5*time.Minute, repo.ttl)
	assert.Equal(t, "catalog", repo.namespace)
}

func TestCachingFoodItemRepository_NilRedisBypasses(t *testing.T) {
	t.Parallel()

	inner := &mockFoodItemRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.FoodItem, error) { return pizza(), nil },
	}
	repo := NewCachingFoodItemRepository(nil, time.Minute, inner, "catalog", nil)

	for i := 0; i < 2; i++ {
		_, err := repo.FindByID(context.Background(), 3)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.findCalls)
	assert.NoError(t, repo.InvalidateFoodItem(context.Background(), 3))
}

func TestCachingFoodItemRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(pizza())
	mock.ExpectGet("catalog:item:3").SetVal(string(cached))

	inner := &mockFoodItemRepository{}
	obs := &countingObserver{}
	repo := NewCachingFoodItemRepository(rdb, time.Minute, inner, "catalog", obs)

	item, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Pizza", item.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(item.Price))
	assert.Zero(t, inner.findCalls)
	assert.Equal(t, 1, obs.hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected, _ := json.Marshal(pizza())
	mock.ExpectGet("catalog:item:3").RedisNil()
	mock.ExpectSet("catalog:item:3", expected, time.Minute).SetVal("OK")

	inner := &mockFoodItemRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.FoodItem, error) { return pizza(), nil },
	}
	obs := &countingObserver{}
	repo := NewCachingFoodItemRepository(rdb, time.Minute, inner, "catalog", obs)

	item, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, uint(3), item.ID)
	assert.Equal(t, 1, obs.misses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_FindByID_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("catalog:item:9").RedisNil()

	repo := NewCachingFoodItemRepository(rdb, time.Minute, &mockFoodItemRepository{}, "catalog", nil)

	_, err := repo.FindByID(context.Background(), 9)

	assert.ErrorIs(t, err, usecase.ErrFoodItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected, _ := json.Marshal(pizza())
	mock.ExpectGet("catalog:item:3").SetVal("{not json")
	mock.ExpectDel("catalog:item:3").SetVal(1)
	mock.ExpectSet("catalog:item:3", expected, time.Minute).SetVal("OK")

	inner := &mockFoodItemRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.FoodItem, error) { return pizza(), nil },
	}
	repo := NewCachingFoodItemRepository(rdb, time.Minute, inner, "catalog", nil)

	_, err := repo.FindByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_Save_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("catalog:item:3").SetVal(1)
	mock.ExpectScan(0, "catalog:list:*", 200).SetVal([]string{"catalog:list::_:false", "catalog:list:main::true"}, 0)
	mock.ExpectDel("catalog:list::_:false", "catalog:list:main::true").SetVal(2)

	repo := NewCachingFoodItemRepository(rdb, time.Minute, &mockFoodItemRepository{}, "catalog", nil)

	require.NoError(t, repo.Save(context.Background(), pizza()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_WriteErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	boom := errors.New("db down")
	inner := &mockFoodItemRepository{
		deleteFn: func(ctx context.Context, id uint) error { return boom },
	}
	repo := NewCachingFoodItemRepository(rdb, time.Minute, inner, "catalog", nil)

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingFoodItemRepository_ListRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	inner := &mockFoodItemRepository{
		listFn: func(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error) {
			return []entity.FoodItem{*pizza()}, nil
		},
	}
	repo := NewCachingFoodItemRepository(rdb, time.Minute, inner, "catalog", nil)
	ctx := context.Background()
	f := entity.Filter{Category: "main", Search: "Chee se", AvailableOnly: true}

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx, f)
		require.NoError(t, err)
		require.Len(t, items, 1)
	}
	assert.Equal(t, 1, inner.listCalls)
	assert.True(t, mr.Exists("catalog:list:main:chee_se:true"))

	require.NoError(t, repo.Create(ctx, &entity.FoodItem{ID: 4}))
	assert.False(t, mr.Exists("catalog:list:main:chee_se:true"))

	_, err := repo.List(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}

func TestSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a_b_c_d", safe("a b:c*d"))
}
