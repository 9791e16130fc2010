package sources

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/core/reconcile"
	"brainrot-catalog/core/utils"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/catalog/rarity"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// skipLinks matches wiki links that never describe a brainrot.
var skipLinks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^/wiki/(File|Category|Special|Template|User|Talk|User_talk|Help|Forum|Message_Wall|Blog):`),
	regexp.MustCompile(`(?i)/Gallery$`),
	regexp.MustCompile(`(?i)^/wiki/(Rebirth|Events|Traits|Mutations|Lucky_Block|Machine|Trader|Dealer|Fuse|Ritual|Fishing|Upcoming)$`),
	regexp.MustCompile(`(?i)^/wiki/(Steal_a_Brainrot|List_of_Brainrots|Brainrots)$`),
}

// wikiEntry is a provisional brainrot found on the listing page.
type wikiEntry struct {
	Page string
	URL  string
}

// infobox holds what was read from an entity page.
type infobox struct {
	rarityLabel string
	price       *float64
	image       string
	description string
}

// WikiFetcher scrapes brainrots from a fandom wiki.
type WikiFetcher struct {
	cfg    WikiConfig
	client *client
	log    *zap.Logger
}

// NewWikiFetcher creates a wiki fetcher.
func NewWikiFetcher(cfg WikiConfig, log *zap.Logger) *WikiFetcher {
	if cfg.ListingPage == "" {
		cfg.ListingPage = "Brainrots"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &WikiFetcher{
		cfg:    cfg,
		client: newClient(cfg.TimeoutSeconds, cfg.RequestDelayMS, cfg.UserAgent),
		log:    log,
	}
}

func (f *WikiFetcher) Source() string { return models.SourceWiki }

// FetchPage returns every entity linked from the listing page. The listing
// is a single document, so there is never a continuation cursor.
func (f *WikiFetcher) FetchPage(ctx context.Context, _ string) (Page, error) {
	doc, err := f.document(ctx, f.cfg.ListingPage)
	if err != nil {
		return Page{}, err
	}
	return Page{Records: f.entries(doc)}, nil
}

func (f *WikiFetcher) entries(doc *goquery.Document) []Raw {
	var (
		out  []Raw
		seen = map[string]struct{}{}
		self = "/wiki/" + f.cfg.ListingPage
	)

	doc.Find(`a[href^="/wiki/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if i := strings.IndexAny(href, "#?"); i >= 0 {
			href = href[:i]
		}
		name, _ := a.Attr("title")
		if name == "" {
			name = a.Text()
		}
		name = strings.TrimSpace(name)

		if href == "" || href == self || name == "" || skipLink(href) {
			return
		}
		if n := utf8.RuneCountInString(name); n < 2 || n >= 100 {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}

		out = append(out, Raw{Name: name, Payload: wikiEntry{
			Page: strings.TrimPrefix(href, "/wiki/"),
			URL:  f.cfg.BaseURL + href,
		}})
	})
	return out
}

func skipLink(href string) bool {
	for _, re := range skipLinks {
		if re.MatchString(href) {
			return true
		}
	}
	return false
}

// Resolve fetches the entity page and reads its infobox. A page that cannot
// be fetched or parsed still yields a record with Common rarity, no price
// and no image.
func (f *WikiFetcher) Resolve(ctx context.Context, raw Raw) (Resolved, error) {
	e, ok := raw.Payload.(wikiEntry)
	if !ok {
		return Resolved{}, fmt.Errorf("wiki fetcher cannot resolve %T", raw.Payload)
	}

	res := Resolved{
		Record: reconcile.Record{
			Name:       raw.Name,
			Rarity:     rarity.Common.String(),
			Price:      reconcile.Null[float64](),
			Metadata:   map[string]any{"wikiUrl": e.URL},
			DataSource: models.SourceWiki,
		},
		ImageKey: assets.StableKey(raw.Name),
	}

	doc, err := f.document(ctx, e.Page)
	if err != nil {
		if ctx.Err() != nil {
			return Resolved{}, ctx.Err()
		}
		f.log.Warn("Wiki page unavailable, using defaults", zap.String("name", raw.Name), zap.Error(err))
		return res, nil
	}

	box := f.parseInfobox(doc)
	res.Record.Rarity = rarity.Classify(nil, box.rarityLabel).String()
	res.Record.Price = reconcile.FromPtr(box.price)
	res.Record.Description = reconcile.Some(box.description)
	res.ImageRef = box.image
	return res, nil
}

func (f *WikiFetcher) parseInfobox(doc *goquery.Document) infobox {
	var box infobox

	doc.Find(".pi-data-label").Each(func(_ int, s *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(s.Text()))
		value := strings.TrimSpace(s.NextFiltered(".pi-data-value").Text())
		if value == "" {
			return
		}
		switch {
		case strings.Contains(label, "rarity") || strings.Contains(label, "tier"):
			box.rarityLabel = value
		case strings.Contains(label, "price") || strings.Contains(label, "cost"):
			if v, ok := utils.ParseAmount(value); ok {
				box.price = &v
			}
		}
	})

	img := doc.Find(".pi-image img, figure.pi-item img, .mw-parser-output img").First()
	if img.Length() > 0 {
		src, _ := img.Attr("src")
		if lazy, ok := img.Attr("data-src"); ok && (src == "" || strings.HasPrefix(src, "data:")) {
			src = lazy
		}
		box.image = f.imageURL(src)
	}

	box.description = strings.TrimSpace(doc.Find(".mw-parser-output > p").First().Text())
	return box
}

// imageURL drops the thumbnail revision suffix and completes the scheme.
func (f *WikiFetcher) imageURL(src string) string {
	src = strings.TrimSpace(src)
	if i := strings.Index(src, "/revision/"); i >= 0 {
		src = src[:i]
	}
	switch {
	case src == "", strings.HasPrefix(src, "data:"):
		return ""
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return f.cfg.BaseURL + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	default:
		return ""
	}
}

func (f *WikiFetcher) document(ctx context.Context, page string) (*goquery.Document, error) {
	body, err := f.client.get(ctx, f.cfg.BaseURL+"/wiki/"+page, "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return doc, nil
}
