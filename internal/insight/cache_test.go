package insight

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string]CachedInsight
	getErr  error
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]CachedInsight)}
}

func (s *memStore) Get(ctx context.Context, key Key) (*CachedInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	if ins, ok := s.entries[key.String()]; ok {
		return &ins, nil
	}
	return nil, nil
}

func (s *memStore) Put(ctx context.Context, ins CachedInsight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	key := Key{PlayerID: ins.PlayerID, Season: ins.Season, Fingerprint: ins.Fingerprint}
	s.entries[key.String()] = ins
	return nil
}

func testKey() Key {
	return Key{PlayerID: 1629029, Season: "2024-25", Fingerprint: SeasonSummaryFingerprint}
}

func TestCache_FreshHitSkipsGenerator(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := context.Background()

	var calls atomic.Int32
	gen := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "generated text", nil
	}

	first, cached, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, gen)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "generated text", first.Text)

	second, cached, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, gen)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int32(1), calls.Load(), "fresh hit must not invoke the generator")
}

func TestCache_ConcurrentCallersGenerateOnce(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	gen := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "slow insight", nil
	}

	const workers = 8
	texts := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ins, _, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, gen)
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			texts[i] = ins.Text
		}(i)
	}

	// Let the callers pile up on the in-flight generation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent callers must share one generation")
	for i, text := range texts {
		assert.Equalf(t, "slow insight", text, "worker %d got a different text", i)
	}
}

func TestCache_ExpiredEntryRegeneratesOnce(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := context.Background()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	var calls atomic.Int32
	gen := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "take " + strings.Repeat("x", int(calls.Load())), nil
	}

	first, _, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, gen)
	require.NoError(t, err)
	assert.Equal(t, current.Add(time.Hour), first.ExpiresAt)

	// Past expiry: exactly one regeneration, entry overwritten.
	current = current.Add(2 * time.Hour)
	second, cached, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, gen)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotEqual(t, first.Text, second.Text)
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, store.entries, 1, "regeneration overwrites, never appends")
}

func TestCache_GeneratorFailurePropagatesAndCachesNothing(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := context.Background()

	boom := errors.New("model overloaded")
	_, _, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, func(ctx context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, store.entries, "failed generation must not cache a negative result")

	// A subsequent call retries and can succeed.
	ins, cached, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "recovered", ins.Text)
}

func TestCache_FailureLeavesStaleEntryForRetry(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	ctx := context.Background()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, _, err := cache.GetOrGenerate(ctx, testKey(), time.Hour, func(ctx context.Context) (string, error) {
		return "original", nil
	})
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, _, err = cache.GetOrGenerate(ctx, testKey(), time.Hour, func(ctx context.Context) (string, error) {
		return "", errors.New("transient")
	})
	require.ErrorIs(t, err, ErrGenerationFailed)

	// The expired entry is still there, untouched.
	stale, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	require.NotNil(t, stale)
	assert.Equal(t, "original", stale.Text)
}

func TestCache_DefaultTTL(t *testing.T) {
	store := newMemStore()
	cache := NewCache(store, nil)
	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	ins, _, err := cache.GetOrGenerate(context.Background(), testKey(), 0, func(ctx context.Context) (string, error) {
		return "text", nil
	})
	require.NoError(t, err)
	assert.Equal(t, current.Add(DefaultTTL), ins.ExpiresAt)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, SeasonSummaryFingerprint, Fingerprint(""))
	assert.Equal(t, SeasonSummaryFingerprint, Fingerprint("   "))

	a := Fingerprint("Why is his three point shooting up?")
	b := Fingerprint("  why is HIS three   point shooting up?  ")
	assert.Equal(t, a, b, "case and whitespace must not change the fingerprint")

	c := Fingerprint("a different question")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "q_"))
}
