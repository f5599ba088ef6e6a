package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu        sync.Mutex
	key       string
	signature string
	raw       *employee.RawTable
	sigErr    error
	reads     int32
}

func (s *fakeSource) Key() string { return s.key }

func (s *fakeSource) Signature(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signature, s.sigErr
}

func (s *fakeSource) Read(ctx context.Context) (*employee.RawTable, error) {
	atomic.AddInt32(&s.reads, 1)
	return s.raw, nil
}

func (s *fakeSource) setSignature(sig string) {
	s.mu.Lock()
	s.signature = sig
	s.mu.Unlock()
}

func newFakeSource(n int) *fakeSource {
	gen := testkit.NewEmployeeGenerator(testkit.EmployeeGeneratorConfig{Rows: n, BaseAttritionRate: 0.2, Seed: 9})
	return &fakeSource{key: "fake", signature: "v1", raw: gen.GenerateRaw()}
}

func TestCache_MemoizesBySignature(t *testing.T) {
	src := newFakeSource(10)
	cache := NewCache()
	ctx := context.Background()

	first, err := cache.Get(ctx, src)
	require.NoError(t, err)
	second, err := cache.Get(ctx, src)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.reads))
	assert.Equal(t, 1, cache.Loads())
}

func TestCache_ReloadsWhenSignatureChanges(t *testing.T) {
	src := newFakeSource(10)
	cache := NewCache()
	ctx := context.Background()

	first, err := cache.Get(ctx, src)
	require.NoError(t, err)

	src.setSignature("v2")
	second, err := cache.Get(ctx, src)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, "v2", second.Signature)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.reads))
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	src := newFakeSource(5)
	cache := NewCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, src)
	require.NoError(t, err)
	cache.Invalidate(src.Key())
	_, ok := cache.Peek(src.Key())
	assert.False(t, ok)

	_, err = cache.Get(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.reads))
}

func TestCache_MissingSourceDropsEntry(t *testing.T) {
	src := newFakeSource(5)
	cache := NewCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, src)
	require.NoError(t, err)

	src.mu.Lock()
	src.sigErr = errors.NotFoundError("fake")
	src.mu.Unlock()

	_, err = cache.Get(ctx, src)
	assert.True(t, errors.IsNotFound(err))
	_, ok := cache.Peek(src.Key())
	assert.False(t, ok)
}

func TestCache_ConcurrentGetsShareTable(t *testing.T) {
	src := newFakeSource(200)
	cache := NewCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	tables := make([]*employee.Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := cache.Get(ctx, src)
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	for _, table := range tables {
		require.NotNil(t, table)
		assert.Equal(t, 200, table.Len())
	}
	loaded, ok := cache.Peek(src.Key())
	require.True(t, ok)
	assert.Equal(t, 200, loaded.Len())
}
