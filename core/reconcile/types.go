package reconcile

import "time"

// Column names of the canonical record schema used in update patches.
const (
	ColumnName        = "name"
	ColumnRarity      = "rarity"
	ColumnPrice       = "price"
	ColumnImagePath   = "image_path"
	ColumnDescription = "description"
	ColumnGameID      = "game_id"
	ColumnMetadata    = "metadata"
	ColumnDataSource  = "data_source"
)

// Record is one normalized item ready for reconciliation.
type Record struct {
	// Name is the display name. Required.
	Name string

	// Rarity is a concrete tier name, never empty.
	Rarity string

	// Price is a non-negative amount, explicit null when unknown.
	Price Field[float64]

	// ImagePath is the public path of the cached image. Absent when no
	// image was acquired, so a previously cached path is kept.
	ImagePath Field[string]

	// Description may be empty. Absent leaves the stored value untouched.
	Description Field[string]

	// ExternalID is the strong identity assigned by the source, if any.
	ExternalID *int64

	// GameID partitions records by source game.
	GameID string

	// Metadata holds source specific facts. Nil leaves stored metadata untouched.
	Metadata map[string]any

	// DataSource names the fetcher that produced the record.
	DataSource string
}

// Existing identifies a stored record.
type Existing struct {
	ID         uint
	ExternalID *int64
	Name       string
	GameID     string
	UpdatedAt  time.Time
}

// Patch is a partial update. Only provided fields are written.
type Patch struct {
	Name        string
	Rarity      string
	Price       Field[float64]
	ImagePath   Field[string]
	Description Field[string]
	GameID      string
	Metadata    map[string]any
	DataSource  string
}

// PatchFrom builds the update patch for rec.
func PatchFrom(rec Record) Patch {
	return Patch{
		Name:        rec.Name,
		Rarity:      rec.Rarity,
		Price:       rec.Price,
		ImagePath:   rec.ImagePath,
		Description: rec.Description,
		GameID:      rec.GameID,
		Metadata:    rec.Metadata,
		DataSource:  rec.DataSource,
	}
}

// Columns returns the column/value pairs to update. Absent fields are
// omitted and explicit nulls map to nil.
func (p Patch) Columns() map[string]any {
	cols := map[string]any{
		ColumnName:   p.Name,
		ColumnRarity: p.Rarity,
		ColumnGameID: p.GameID,
	}
	if p.DataSource != "" {
		cols[ColumnDataSource] = p.DataSource
	}
	if p.Price.Present() {
		cols[ColumnPrice] = p.Price.column()
	}
	if p.ImagePath.Present() {
		cols[ColumnImagePath] = p.ImagePath.column()
	}
	if p.Description.Present() {
		cols[ColumnDescription] = p.Description.column()
	}
	if p.Metadata != nil {
		cols[ColumnMetadata] = p.Metadata
	}
	return cols
}

// Outcome is the result of a single upsert.
type Outcome string

const (
	// OutcomeCreated means a new record was inserted.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing record was updated in place.
	OutcomeUpdated Outcome = "updated"
)
