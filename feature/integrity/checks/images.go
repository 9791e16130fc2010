package checks

import (
	"context"
	"fmt"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/feature/catalog/models"
)

// ImageLister lists the catalog rows that reference a cached image.
type ImageLister interface {
	WithImages(ctx context.Context) ([]models.Brainrot, error)
}

// MissingImage is a row whose cached image is not in the store.
type MissingImage struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

// ImageReport is the result of an image cache check.
type ImageReport struct {
	Checked int            `json:"checked"`
	Missing []MissingImage `json:"missing"`
	Status  string         `json:"status"` // "ok", "error"
}

// CheckImages reports rows whose image path points at a file the store does not hold.
func CheckImages(ctx context.Context, lister ImageLister, store assets.Store) (*ImageReport, error) {
	rows, err := lister.WithImages(ctx)
	if err != nil {
		return nil, err
	}

	report := &ImageReport{Missing: []MissingImage{}, Status: "ok"}
	for _, row := range rows {
		if row.ImagePath == nil {
			continue
		}
		report.Checked++

		name := assets.NameOf(*row.ImagePath)
		ok := assets.ValidName(name)
		if ok {
			ok, err = store.Exists(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("check image %s: %w", name, err)
			}
		}
		if !ok {
			report.Missing = append(report.Missing, MissingImage{ID: row.ID, Name: row.Name, ImagePath: *row.ImagePath})
		}
	}

	if len(report.Missing) > 0 {
		report.Status = "error"
	}
	return report, nil
}
