package bgg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeBGG serves canned XML and records what it was asked.
type fakeBGG struct {
	search   string
	thing    string
	status   int
	delay    time.Duration
	searches atomic.Int32
	things   atomic.Int32
	mu       sync.Mutex
	queries  []string
}

func (f *fakeBGG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	switch r.URL.Path {
	case "/search":
		f.searches.Add(1)
		_, _ = w.Write([]byte(f.search))
	case "/thing":
		f.things.Add(1)
		_, _ = w.Write([]byte(f.thing))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBGG) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.queries...)
}

func newTestClient(t *testing.T, f *fakeBGG, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	base := []Option{WithBaseURL(srv.URL), WithMinInterval(0)}
	return NewClient(append(base, opts...)...)
}

func TestSearchGames(t *testing.T) {
	f := &fakeBGG{search: searchXML}
	client := newTestClient(t, f)

	results, err := client.SearchGames(context.Background(), "gloom haven")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"174430", "291457", "999"},
		[]string{results[0].ID, results[1].ID, results[2].ID})

	queries := f.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, "query=gloom+haven&type=boardgame", queries[0])
}

func TestSearchGames_EmptyResult(t *testing.T) {
	f := &fakeBGG{search: `<items total="0" termsofuse="x"></items>`}
	client := newTestClient(t, f)

	results, err := client.SearchGames(context.Background(), "jeuquinexistepas123456789")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchGames_HTTPError(t *testing.T) {
	f := &fakeBGG{status: http.StatusServiceUnavailable}
	client := newTestClient(t, f)

	_, err := client.SearchGames(context.Background(), "catan")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Equal(t, "search failed", err.Error())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestSearchGames_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(WithBaseURL(srv.URL), WithMinInterval(0))

	_, err := client.SearchGames(context.Background(), "catan")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)

	var bggErr *Error
	require.ErrorAs(t, err, &bggErr)
	assert.Equal(t, "search", bggErr.Op)
	assert.Equal(t, "catan", bggErr.ID)
	assert.NotNil(t, bggErr.Cause())
}

func TestSearchGames_MalformedXML(t *testing.T) {
	f := &fakeBGG{search: `<items><item id="1">`}
	client := newTestClient(t, f)

	_, err := client.SearchGames(context.Background(), "catan")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestGetGameDetails(t *testing.T) {
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f)

	d, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	assert.Equal(t, "Gloomhaven", d.Name)
	assert.Equal(t, 4, *d.MaxPlayers)

	queries := f.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, "id=174430&stats=1", queries[0])
}

func TestGetGameDetails_CachedWithinTTL(t *testing.T) {
	clock := newFakeClock()
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f, WithClock(clock.Now))

	first, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	clock.Advance(23 * time.Hour)
	second, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.things.Load(), "second lookup must come from cache")
	assert.Equal(t, first, second)
}

func TestGetGameDetails_CacheIsolatedFromCallers(t *testing.T) {
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f)

	first, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	first.Name = "changed"
	first.Mechanics[0] = "changed"
	*first.MaxPlayers = 99

	second, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	assert.Equal(t, "Gloomhaven", second.Name)
	assert.Equal(t, "Cooperative Game", second.Mechanics[0])
	assert.Equal(t, 4, *second.MaxPlayers)
}

func TestGetGameDetails_RefetchAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f, WithClock(clock.Now))

	_, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Millisecond)
	_, err = client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.things.Load())
}

func TestGetGameDetails_ExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f, WithClock(clock.Now))

	_, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	entry, ok := client.cache.Entry("174430")
	require.True(t, ok)
	assert.Equal(t, entry.CachedAt.Add(24*time.Hour), entry.ExpiresAt)

	// An entry is only valid strictly before its expiry.
	clock.Advance(24 * time.Hour)
	_, err = client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.things.Load())
}

func TestGetGameDetails_NotFound(t *testing.T) {
	f := &fakeBGG{thing: `<items termsofuse="x"></items>`}
	client := newTestClient(t, f)

	d, err := client.GetGameDetails(context.Background(), "99999999")
	require.Error(t, err)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrDetailsFailed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "details fetch failed: game not found", err.Error())
	assert.Equal(t, 0, client.cache.Len(), "failures are not cached")
}

func TestGetGameDetails_HTTPError(t *testing.T) {
	f := &fakeBGG{status: http.StatusInternalServerError}
	client := newTestClient(t, f)

	_, err := client.GetGameDetails(context.Background(), "174430")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDetailsFailed)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "details fetch failed", err.Error())
}

func TestGetGameDetails_CoalescesConcurrentLookups(t *testing.T) {
	f := &fakeBGG{thing: thingXML, delay: 100 * time.Millisecond}
	client := newTestClient(t, f)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := client.GetGameDetails(context.Background(), "174430")
			if err == nil && d.Name != "Gloomhaven" {
				err = errors.New("unexpected name " + d.Name)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.things.Load())
}

func TestGetGameDetails_CancelledCallerDoesNotFailOthers(t *testing.T) {
	f := &fakeBGG{thing: thingXML, delay: 300 * time.Millisecond}
	client := newTestClient(t, f)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := client.GetGameDetails(leaderCtx, "174430")
		leaderErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	type result struct {
		d   *GameDetails
		err error
	}
	follower := make(chan result, 1)
	go func() {
		d, err := client.GetGameDetails(context.Background(), "174430")
		follower <- result{d, err}
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	err := <-leaderErr
	assert.ErrorIs(t, err, ErrDetailsFailed)
	assert.ErrorIs(t, err, context.Canceled)

	r := <-follower
	require.NoError(t, r.err)
	assert.Equal(t, "Gloomhaven", r.d.Name)
	assert.Equal(t, int32(1), f.things.Load())
}

func TestGetGameDetails_CancelledFlightStillFillsCache(t *testing.T) {
	f := &fakeBGG{thing: thingXML, delay: 100 * time.Millisecond}
	client := newTestClient(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.GetGameDetails(ctx, "174430")
	require.ErrorIs(t, err, ErrDetailsFailed)

	assert.Eventually(t, func() bool {
		_, ok := client.cache.Get("174430")
		return ok
	}, time.Second, 10*time.Millisecond)

	d, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	assert.Equal(t, "Gloomhaven", d.Name)
	assert.Equal(t, int32(1), f.things.Load())
}

func TestRateLimit_BackToBackSearches(t *testing.T) {
	f := &fakeBGG{search: searchXML}
	client := newTestClient(t, f, WithMinInterval(DefaultMinInterval))

	start := time.Now()
	_, err := client.SearchGames(context.Background(), "first")
	require.NoError(t, err)
	_, err = client.SearchGames(context.Background(), "second")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 990*time.Millisecond)
	assert.Equal(t, int32(2), f.searches.Load())
}

func TestRateLimit_CacheHitDoesNotWait(t *testing.T) {
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f, WithMinInterval(DefaultMinInterval))

	_, err := client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)

	start := time.Now()
	_, err = client.GetGameDetails(context.Background(), "174430")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimit_ContextCancelled(t *testing.T) {
	f := &fakeBGG{search: searchXML}
	client := newTestClient(t, f, WithMinInterval(time.Minute))

	_, err := client.SearchGames(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.SearchGames(ctx, "second")
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Equal(t, int32(1), f.searches.Load())
}

func TestCleanExpiredCache(t *testing.T) {
	clock := newFakeClock()
	f := &fakeBGG{thing: thingXML}
	client := newTestClient(t, f, WithClock(clock.Now))

	_, err := client.GetGameDetails(context.Background(), "old")
	require.NoError(t, err)
	clock.Advance(20 * time.Hour)
	_, err = client.GetGameDetails(context.Background(), "new")
	require.NoError(t, err)

	clock.Advance(5 * time.Hour)
	client.CleanExpiredCache()

	assert.Equal(t, 1, client.cache.Len())
	_, ok := client.cache.Entry("new")
	assert.True(t, ok)
	_, ok = client.cache.Entry("old")
	assert.False(t, ok)
}

func TestClient_ImplementsProvider(t *testing.T) {
	var _ Provider = NewClient()
}
