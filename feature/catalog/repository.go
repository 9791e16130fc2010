package catalog

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"brainrot-catalog/core/database"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/catalog/rarity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// Repository persists brainrots with GORM and implements reconcile.Store.
type Repository struct {
	db *gorm.DB
}

var _ reconcile.Store = (*Repository)(nil)

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the brainrots table and its indexes.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Brainrot{}); err != nil {
		return fmt.Errorf("migrate brainrots: %w", err)
	}
	return nil
}

func (r *Repository) FindByExternalID(ctx context.Context, id int64) (*reconcile.Existing, error) {
	var row models.Brainrot
	err := r.db.WithContext(ctx).Where("external_id = ?", id).Take(&row).Error
	return existingOrNil(&row, err)
}

func (r *Repository) FindByNaturalKey(ctx context.Context, name, gameID string) (*reconcile.Existing, error) {
	var row models.Brainrot
	err := r.db.WithContext(ctx).
		Where("name = ? AND game_id = ? AND external_id IS NULL", name, gameID).
		Order("id").
		First(&row).Error
	return existingOrNil(&row, err)
}

func (r *Repository) Insert(ctx context.Context, rec reconcile.Record) (*reconcile.Existing, error) {
	meta, err := encodeMetadata(rec.Metadata)
	if err != nil {
		return nil, err
	}

	row := models.Brainrot{
		Name:        rec.Name,
		Rarity:      rec.Rarity,
		Category:    rec.Rarity,
		Price:       rec.Price.Ptr(),
		ImagePath:   rec.ImagePath.Ptr(),
		Description: rec.Description.Ptr(),
		ExternalID:  rec.ExternalID,
		GameID:      rec.GameID,
		Metadata:    meta,
		DataSource:  rec.DataSource,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate("insert", err)
	}
	return toExisting(&row), nil
}

func (r *Repository) UpdateFields(ctx context.Context, id uint, patch reconcile.Patch) (*reconcile.Existing, error) {
	cols := patch.Columns()
	if meta, ok := cols[reconcile.ColumnMetadata]; ok {
		encoded, err := encodeMetadata(meta.(map[string]any))
		if err != nil {
			return nil, err
		}
		cols[reconcile.ColumnMetadata] = encoded
	}
	cols["category"] = patch.Rarity

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Brainrot{ID: id}).Updates(cols).Error; err != nil {
		return nil, translate("update", err)
	}

	var row models.Brainrot
	if err := db.Take(&row, id).Error; err != nil {
		return nil, fmt.Errorf("reload brainrot %d: %w", id, err)
	}
	return toExisting(&row), nil
}

// List returns a page of brainrots ordered by id.
func (r *Repository) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(filter.Offset, 0)

	q := r.db.WithContext(ctx).Model(&models.Brainrot{})
	if filter.Rarity != "" {
		q = q.Where("rarity = ?", filter.Rarity)
	}
	if filter.GameID != "" {
		q = q.Where("game_id = ?", filter.GameID)
	}
	// reusable for both the count and the page query
	q = q.Session(&gorm.Session{})

	page := &models.Page{Limit: limit, Offset: offset, Items: []models.Brainrot{}}
	if err := q.Count(&page.Total).Error; err != nil {
		return nil, fmt.Errorf("count brainrots: %w", err)
	}
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&page.Items).Error; err != nil {
		return nil, fmt.Errorf("list brainrots: %w", err)
	}
	return page, nil
}

// Get returns one brainrot, or nil when it does not exist.
func (r *Repository) Get(ctx context.Context, id uint) (*models.Brainrot, error) {
	var row models.Brainrot
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get brainrot %d: %w", id, err)
	}
	return &row, nil
}

// RarityCounts returns the number of brainrots per tier, rarest last and OG at the end.
func (r *Repository) RarityCounts(ctx context.Context) ([]models.RarityCount, error) {
	var counts []models.RarityCount
	err := r.db.WithContext(ctx).Model(&models.Brainrot{}).
		Select("rarity, COUNT(*) AS count").
		Group("rarity").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count rarities: %w", err)
	}
	sortByTier(counts)
	return counts, nil
}

// WithImages returns every brainrot that references a cached image.
func (r *Repository) WithImages(ctx context.Context) ([]models.Brainrot, error) {
	var rows []models.Brainrot
	err := r.db.WithContext(ctx).
		Select("id", "name", "image_path").
		Where("image_path IS NOT NULL AND image_path <> ''").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list image paths: %w", err)
	}
	return rows, nil
}

func sortByTier(counts []models.RarityCount) {
	rank := func(s string) int {
		if r := rarity.Tier(s).Rank(); r >= 0 {
			return r
		}
		return len(rarity.All())
	}
	slices.SortStableFunc(counts, func(a, b models.RarityCount) int {
		return cmp.Compare(rank(a.Rarity), rank(b.Rarity))
	})
}

func existingOrNil(row *models.Brainrot, err error) (*reconcile.Existing, error) {
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toExisting(row), nil
}

func toExisting(row *models.Brainrot) *reconcile.Existing {
	return &reconcile.Existing{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		GameID:     row.GameID,
		UpdatedAt:  row.UpdatedAt,
	}
}

func translate(op string, err error) error {
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%s brainrot: %w: %w", op, reconcile.ErrDuplicate, err)
	}
	return fmt.Errorf("%s brainrot: %w", op, err)
}

func encodeMetadata(meta map[string]any) (datatypes.JSON, error) {
	if meta == nil {
		return nil, nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return datatypes.JSON(raw), nil
}
