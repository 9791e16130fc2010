package catalog

import (
	"context"
	"errors"
	"testing"

	"brainrot-catalog/core/database"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func ptr[T any](v T) *T { return &v }

func TestRepository_Migrate(t *testing.T) {
	repo := setupRepository(t)
	missing, err := database.MissingColumns(repo.db, "brainrots", models.RequiredColumns)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRepository_Lookups(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	withID, err := repo.Insert(ctx, reconcile.Record{Name: "X", Rarity: "Rare", GameID: "g", ExternalID: ptr[int64](7)})
	require.NoError(t, err)

	found, err := repo.FindByExternalID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, withID.ID, found.ID)

	// the only "X" carries an external id, so the natural key does not match it
	found, err = repo.FindByNaturalKey(ctx, "X", "g")
	require.NoError(t, err)
	assert.Nil(t, found)

	plain, err := repo.Insert(ctx, reconcile.Record{Name: "X", Rarity: "Common", GameID: "g"})
	require.NoError(t, err)
	found, err = repo.FindByNaturalKey(ctx, "X", "g")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, plain.ID, found.ID)

	found, err = repo.FindByExternalID(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_DuplicateExternalID(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, reconcile.Record{Name: "A", Rarity: "Rare", GameID: "g", ExternalID: ptr[int64](1)})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, reconcile.Record{Name: "B", Rarity: "Rare", GameID: "g", ExternalID: ptr[int64](1)})
	assert.ErrorIs(t, err, reconcile.ErrDuplicate)
}

func TestRepository_EngineConflict(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, reconcile.Record{Name: "A", Rarity: "Rare", GameID: "g", ExternalID: ptr[int64](1)})
	require.NoError(t, err)

	// a racing writer: lookups miss, the insert collides
	engine := reconcile.NewEngine(missingLookups{repo}, zap.NewNop())
	_, err = engine.Upsert(ctx, reconcile.Record{Name: "A", Rarity: "Rare", GameID: "g", ExternalID: ptr[int64](1)})

	var conflict *reconcile.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

type missingLookups struct{ *Repository }

func (missingLookups) FindByExternalID(context.Context, int64) (*reconcile.Existing, error) {
	return nil, nil
}

func TestRepository_PartialUpdate(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	engine := reconcile.NewEngine(repo, zap.NewNop())

	_, err := engine.Upsert(ctx, reconcile.Record{
		Name: "Brr", Rarity: "Epic", GameID: "g", ExternalID: ptr[int64](5),
		Price: reconcile.Some(10.0), ImagePath: reconcile.Some("/images/brr.png"),
		Metadata: map[string]any{"awardedCount": 1},
	})
	require.NoError(t, err)

	out, err := engine.Upsert(ctx, reconcile.Record{
		Name: "Brr Renamed", Rarity: "Mythic", GameID: "g", ExternalID: ptr[int64](5),
		Price: reconcile.Null[float64](),
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUpdated, out)

	page, err := repo.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	row := page.Items[0]
	assert.Equal(t, "Brr Renamed", row.Name)
	assert.Equal(t, "Mythic", row.Rarity)
	assert.Equal(t, "Mythic", row.Category)
	assert.Nil(t, row.Price)
	require.NotNil(t, row.ImagePath)
	assert.Equal(t, "/images/brr.png", *row.ImagePath)
	assert.Equal(t, float64(1), row.MetadataMap()["awardedCount"])
}

func TestRepository_ListAndCounts(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for i, r := range []string{"Secret", "Common", "Common", "OG", "Rare"} {
		_, err := repo.Insert(ctx, reconcile.Record{Name: "item" + string(rune('a'+i)), Rarity: r, GameID: "g"})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, models.ListFilter{Rarity: "Common"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)

	page, err = repo.List(ctx, models.ListFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 1)

	counts, err := repo.RarityCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.RarityCount{
		{Rarity: "Common", Count: 2},
		{Rarity: "Rare", Count: 1},
		{Rarity: "Secret", Count: 1},
		{Rarity: "OG", Count: 1},
	}, counts)

	item, err := repo.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestRepository_WithImages(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, reconcile.Record{Name: "a", Rarity: "Rare", GameID: "g", ImagePath: reconcile.Some("/images/a.png")})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, reconcile.Record{Name: "b", Rarity: "Rare", GameID: "g"})
	require.NoError(t, err)

	rows, err := repo.WithImages(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Name)
}

func TestSortByTier(t *testing.T) {
	counts := []models.RarityCount{
		{Rarity: "OG", Count: 1},
		{Rarity: "Secret", Count: 2},
		{Rarity: "Unknown", Count: 3},
		{Rarity: "Common", Count: 4},
		{Rarity: "Brainrot God", Count: 5},
		{Rarity: "Rare", Count: 6},
	}

	sortByTier(counts)

	var got []string
	for _, c := range counts {
		got = append(got, c.Rarity)
	}
	// tiers by rank, then out of band labels in their original order
	assert.Equal(t, []string{"Common", "Rare", "Brainrot God", "Secret", "OG", "Unknown"}, got)
}
