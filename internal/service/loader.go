package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jask/artgrid/internal/artic"
	"github.com/jask/artgrid/internal/catalog"
)

// ArtworkLister is the slice of the API client the loader needs.
type ArtworkLister interface {
	ListArtworks(ctx context.Context, req artic.ListRequest) (artic.ArtworksPage, error)
}

// Loader fetches one page of the catalog at a fixed size and normalizes it.
type Loader struct {
	Artworks ArtworkLister
	PageSize int
	Fields   []string
	Log      *slog.Logger
}

// Load fetches page. Failures are logged here and returned wrapped; callers
// keep whatever page they were showing.
func (l *Loader) Load(ctx context.Context, page int) (catalog.Page, error) {
	log := l.logger().With("page", page, "limit", l.PageSize)
	if l.Artworks == nil {
		err := fmt.Errorf("loader: artworks client not configured")
		log.Error("page load failed", "err", err)
		return catalog.Page{}, err
	}

	res, err := l.Artworks.ListArtworks(ctx, artic.ListRequest{Page: page, Limit: l.PageSize, Fields: l.Fields})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("page load abandoned")
		} else {
			log.Error("page load failed", "err", err)
		}
		return catalog.Page{}, fmt.Errorf("load page %d: %w", page, err)
	}

	out := catalog.Page{
		Number:     page,
		Total:      res.Pagination.Total,
		TotalPages: res.Pagination.TotalPages,
		Records:    make([]catalog.Record, 0, len(res.Data)),
	}
	if res.Pagination.CurrentPage > 0 {
		out.Number = res.Pagination.CurrentPage
	}
	for _, a := range res.Data {
		out.Records = append(out.Records, Normalize(a))
	}
	log.Info("page loaded", "request_id", res.RequestID, "records", len(out.Records), "total", out.Total)
	return out, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Log == nil {
		return slog.Default()
	}
	return l.Log
}

// Normalize maps a raw artwork onto the local record shape. Null text becomes
// empty; null years stay nil.
func Normalize(a artic.Artwork) catalog.Record {
	return catalog.Record{
		ID:           a.ID,
		Title:        text(a.Title),
		Origin:       text(a.PlaceOfOrigin),
		Artist:       text(a.ArtistDisplay),
		Inscriptions: text(a.Inscriptions),
		DateStart:    a.DateStart,
		DateEnd:      a.DateEnd,
	}
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
