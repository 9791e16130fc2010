package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"brainrot-catalog/core/database"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/feature/catalog"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/catalog/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher lists fixed records; payloads are the records to resolve to.
type stubFetcher struct {
	records   []sources.Raw
	listErr   error
	failAt    map[string]error
	panicAt   string
	block     chan struct{}
	images    map[string]string
	mu        sync.Mutex
	paceCalls int
}

func (f *stubFetcher) Source() string { return "stub" }

func (f *stubFetcher) FetchPage(context.Context, string) (sources.Page, error) {
	if f.block != nil {
		<-f.block
	}
	if f.listErr != nil {
		return sources.Page{}, f.listErr
	}
	return sources.Page{Records: f.records}, nil
}

func (f *stubFetcher) Resolve(_ context.Context, raw sources.Raw) (sources.Resolved, error) {
	if raw.Name == f.panicAt {
		panic("unexpected markup")
	}
	if err, ok := f.failAt[raw.Name]; ok {
		return sources.Resolved{}, err
	}
	return sources.Resolved{
		Record:   raw.Payload.(reconcile.Record),
		ImageRef: f.images[raw.Name],
		ImageKey: raw.Name,
	}, nil
}

func (f *stubFetcher) Pace(context.Context) error {
	f.mu.Lock()
	f.paceCalls++
	f.mu.Unlock()
	return nil
}

// stubImages returns a path per key and fails for refs listed in fail.
type stubImages struct {
	fail map[string]bool
}

func (s stubImages) Acquire(_ context.Context, ref, key string) (string, error) {
	if s.fail[ref] {
		return "", errors.New("404")
	}
	return "/images/" + key + ".png", nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func record(name string, externalID *int64) sources.Raw {
	return sources.Raw{Name: name, Payload: reconcile.Record{
		Name: name, Rarity: "Common", ExternalID: externalID, Price: reconcile.Null[float64](),
	}}
}

func ptr[T any](v T) *T { return &v }

func setupCatalog(t *testing.T) *catalog.Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := catalog.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func newTestOrchestrator(t *testing.T, f *stubFetcher, images ImageAcquirer, pub *recordingPublisher) (*Orchestrator, *catalog.Repository) {
	t.Helper()
	repo := setupCatalog(t)
	engine := reconcile.NewEngine(repo, zap.NewNop())
	if pub == nil {
		pub = &recordingPublisher{}
	}
	cfg := Config{GameID: "game-1", MaxFailures: 3}
	return NewOrchestrator(cfg, f, images, engine, pub, zap.NewNop()), repo
}

func TestRunNow_Idempotent(t *testing.T) {
	f := &stubFetcher{records: []sources.Raw{
		record("Tung Tung Sahur", ptr[int64](1)),
		record("Tralalero", ptr[int64](2)),
		record("Wiki Only", nil),
	}}
	orch, repo := newTestOrchestrator(t, f, stubImages{}, nil)
	ctx := context.Background()

	first, err := orch.RunNow(ctx)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, 3, first.TotalSeen)
	assert.Equal(t, 3, first.Created)
	assert.Equal(t, 0, first.Updated)

	second, err := orch.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Updated)

	page, err := repo.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	for _, item := range page.Items {
		assert.Equal(t, "game-1", item.GameID)
	}
	assert.Equal(t, 4, f.paceCalls)
}

func TestRunNow_StrongIdentityKeepsEntitiesApart(t *testing.T) {
	f := &stubFetcher{records: []sources.Raw{record("X", ptr[int64](7)), record("X", nil)}}
	orch, repo := newTestOrchestrator(t, f, nil, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	page, err := repo.List(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestRunNow_PartialFailureIsolation(t *testing.T) {
	var raws []sources.Raw
	for i := 1; i <= 10; i++ {
		raws = append(raws, record(fmt.Sprintf("brainrot-%02d", i), ptr(int64(i))))
	}
	f := &stubFetcher{
		records: raws,
		failAt:  map[string]error{"brainrot-05": errors.New("malformed infobox")},
		panicAt: "brainrot-08",
	}
	orch, repo := newTestOrchestrator(t, f, stubImages{}, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, res.TotalSeen)
	assert.Equal(t, 2, res.Errors)
	assert.Equal(t, 8, res.Created)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, "brainrot-05", res.Failures[0].Name)
	assert.Contains(t, res.Failures[0].Error, "malformed infobox")
	assert.Contains(t, res.Failures[1].Error, "panic")

	page, err := repo.List(context.Background(), models.ListFilter{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(8), page.Total)
}

func TestRunNow_FailuresAreBounded(t *testing.T) {
	f := &stubFetcher{
		records: []sources.Raw{record("a", nil), record("b", nil), record("c", nil), record("d", nil)},
		failAt: map[string]error{
			"a": errors.New("x"), "b": errors.New("x"), "c": errors.New("x"), "d": errors.New("x"),
		},
	}
	orch, _ := newTestOrchestrator(t, f, nil, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Errors)
	assert.Len(t, res.Failures, 3)
}

func TestRunNow_InvalidRecordCounted(t *testing.T) {
	f := &stubFetcher{records: []sources.Raw{
		{Name: "negative", Payload: reconcile.Record{Name: "negative", Rarity: "Rare", Price: reconcile.Some(-5.0)}},
		record("ok", nil),
	}}
	orch, _ := newTestOrchestrator(t, f, nil, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.Created)
}

func TestRunNow_ListingFailureIsFatal(t *testing.T) {
	pub := &recordingPublisher{}
	f := &stubFetcher{listErr: errors.New("connection refused")}
	orch, _ := newTestOrchestrator(t, f, nil, pub)

	res, err := orch.RunNow(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, sources.ErrListingUnavailable)

	status := orch.Status()
	assert.False(t, status.Running)
	assert.Nil(t, status.LastSyncAt)
	assert.Nil(t, orch.LastResult())
	assert.Empty(t, pub.events)
}

func TestRunNow_EmptyListing(t *testing.T) {
	orch, _ := newTestOrchestrator(t, &stubFetcher{}, nil, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.TotalSeen)
	assert.NotNil(t, orch.Status().LastSyncAt)
}

func TestRunNow_ImageHandling(t *testing.T) {
	f := &stubFetcher{
		records: []sources.Raw{record("with-image", ptr[int64](1)), record("broken-image", ptr[int64](2))},
		images:  map[string]string{"with-image": "https://cdn/ok.png", "broken-image": "https://cdn/gone.png"},
	}
	orch, repo := newTestOrchestrator(t, f, stubImages{fail: map[string]bool{"https://cdn/gone.png": true}}, nil)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Errors)

	page, err := repo.List(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.Items[0].ImagePath)
	assert.Equal(t, "/images/with-image.png", *page.Items[0].ImagePath)
	assert.Nil(t, page.Items[1].ImagePath)

	// a later failed download keeps the cached path
	f.images["with-image"] = "https://cdn/gone.png"
	_, err = orch.RunNow(context.Background())
	require.NoError(t, err)
	item, err := repo.Get(context.Background(), page.Items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, item.ImagePath)
	assert.Equal(t, "/images/with-image.png", *item.ImagePath)
}

func TestRunNow_PublishesResult(t *testing.T) {
	pub := &recordingPublisher{}
	orch, _ := newTestOrchestrator(t, &stubFetcher{records: []sources.Raw{record("a", nil)}}, nil, pub)

	res, err := orch.RunNow(context.Background())
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	event := pub.events[0].(Event)
	assert.Equal(t, EventSyncCompleted, event.Type)
	assert.Same(t, res, event.Result)
	assert.Same(t, res, orch.LastResult())
}

func TestSingleFlight(t *testing.T) {
	f := &stubFetcher{records: []sources.Raw{record("a", nil), record("b", nil)}, block: make(chan struct{})}
	orch, _ := newTestOrchestrator(t, f, nil, nil)
	ctx := context.Background()

	require.NoError(t, orch.Start(ctx))
	assert.True(t, orch.Status().Running)

	res, err := orch.RunNow(ctx)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
	assert.ErrorIs(t, orch.Start(ctx), ErrAlreadyInProgress)

	close(f.block)
	require.Eventually(t, func() bool { return !orch.Status().Running }, 5*time.Second, 10*time.Millisecond)

	last := orch.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, 2, last.TotalSeen)
	assert.Equal(t, 2, last.Created)
	assert.Equal(t, 0, last.Errors)
}
