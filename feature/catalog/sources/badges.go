package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/core/utils"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/catalog/rarity"

	"go.uber.org/zap"
)

type badgeStatistics struct {
	PastDayAwardedCount int64    `json:"pastDayAwardedCount"`
	AwardedCount        int64    `json:"awardedCount"`
	WinRatePercentage   *float64 `json:"winRatePercentage"`
}

// badge is one entry of the badges API listing.
type badge struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	DisplayName        string           `json:"displayName"`
	DisplayDescription string           `json:"displayDescription"`
	Enabled            bool             `json:"enabled"`
	IconImageID        int64            `json:"iconImageId"`
	DisplayIconImageID int64            `json:"displayIconImageId"`
	Created            string           `json:"created"`
	Updated            string           `json:"updated"`
	Statistics         *badgeStatistics `json:"statistics"`
}

type badgePage struct {
	Data           *[]badge `json:"data"`
	NextPageCursor *string  `json:"nextPageCursor"`
}

type thumbnailResponse struct {
	Data []struct {
		TargetID int64  `json:"targetId"`
		State    string `json:"state"`
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}

// BadgeFetcher lists brainrots from a game's badge statistics.
type BadgeFetcher struct {
	cfg    BadgeConfig
	client *client
	log    *zap.Logger
}

// NewBadgeFetcher creates a badge API fetcher.
func NewBadgeFetcher(cfg BadgeConfig, log *zap.Logger) *BadgeFetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &BadgeFetcher{
		cfg:    cfg,
		client: newClient(cfg.TimeoutSeconds, cfg.RequestDelayMS, cfg.UserAgent),
		log:    log,
	}
}

func (f *BadgeFetcher) Source() string { return models.SourceBadges }

// FetchPage requests one page of badges sorted oldest first.
func (f *BadgeFetcher) FetchPage(ctx context.Context, cursor string) (Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(f.cfg.PageSize))
	q.Set("sortOrder", "Asc")
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	endpoint := fmt.Sprintf("%s/universes/%s/badges?%s",
		strings.TrimRight(f.cfg.BaseURL, "/"), url.PathEscape(f.cfg.UniverseID), q.Encode())

	body, err := f.client.get(ctx, endpoint, "application/json")
	if err != nil {
		return Page{}, err
	}

	var payload badgePage
	if err := json.Unmarshal(body, &payload); err != nil {
		return Page{}, fmt.Errorf("decode badges page: %w", err)
	}
	if payload.Data == nil {
		return Page{}, errors.New("decode badges page: missing data array")
	}

	page := Page{Records: make([]Raw, 0, len(*payload.Data))}
	for _, b := range *payload.Data {
		page.Records = append(page.Records, Raw{Name: utils.FirstNonEmpty(b.DisplayName, b.Name), Payload: b})
	}
	if payload.NextPageCursor != nil {
		page.Next = *payload.NextPageCursor
	}
	return page, nil
}

// Resolve normalizes a badge. Rarity comes from the win rate when the API
// reports one, otherwise from the description. The badges API has no price.
func (f *BadgeFetcher) Resolve(ctx context.Context, raw Raw) (Resolved, error) {
	b, ok := raw.Payload.(badge)
	if !ok {
		return Resolved{}, fmt.Errorf("badge fetcher cannot resolve %T", raw.Payload)
	}

	name := utils.FirstNonEmpty(b.DisplayName, b.Name)
	if strings.TrimSpace(name) == "" {
		return Resolved{}, fmt.Errorf("%w: badge %d has no name", reconcile.ErrInvalidRecord, b.ID)
	}

	var winRate *float64
	meta := map[string]any{
		"awardedCount":        int64(0),
		"pastDayAwardedCount": int64(0),
		"winRate":             nil,
		"iconImageId":         b.DisplayIconImageID,
		"created":             b.Created,
		"updated":             b.Updated,
	}
	if b.DisplayIconImageID == 0 {
		meta["iconImageId"] = b.IconImageID
	}
	if s := b.Statistics; s != nil {
		winRate = s.WinRatePercentage
		meta["awardedCount"] = s.AwardedCount
		meta["pastDayAwardedCount"] = s.PastDayAwardedCount
		if winRate != nil {
			meta["winRate"] = *winRate
		}
	}

	id := b.ID
	tier := rarity.Classify(winRate, utils.FirstNonEmpty(b.Description, b.DisplayDescription))

	icon, err := f.iconURL(ctx, id)
	if err != nil {
		f.log.Warn("Badge icon lookup failed", zap.Int64("badge_id", id), zap.Error(err))
	}

	return Resolved{
		Record: reconcile.Record{
			Name:        name,
			Rarity:      tier.String(),
			Price:       reconcile.Null[float64](),
			Description: reconcile.Some(utils.FirstNonEmpty(b.DisplayDescription, b.Description)),
			ExternalID:  &id,
			Metadata:    meta,
			DataSource:  models.SourceBadges,
		},
		ImageRef: icon,
		ImageKey: fmt.Sprintf("badge_%d_%s", id, utils.Slug(b.Name)),
	}, nil
}

// MaxPages bounds pagination; 0 means no limit.
func (f *BadgeFetcher) MaxPages() int { return f.cfg.MaxPages }

// Pace spaces consecutive badge records.
func (f *BadgeFetcher) Pace(ctx context.Context) error {
	return f.client.limiter.Wait(ctx)
}

// iconURL asks the thumbnails API for the 150x150 PNG icon of a badge.
// A badge without an icon yields "".
func (f *BadgeFetcher) iconURL(ctx context.Context, badgeID int64) (string, error) {
	if f.cfg.ThumbnailsURL == "" {
		return "", nil
	}
	q := url.Values{}
	q.Set("badgeIds", strconv.FormatInt(badgeID, 10))
	q.Set("size", "150x150")
	q.Set("format", "Png")

	body, err := f.client.get(ctx, f.cfg.ThumbnailsURL+"?"+q.Encode(), "application/json")
	if err != nil {
		return "", err
	}

	var resp thumbnailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode thumbnails: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	return resp.Data[0].ImageURL, nil
}
