package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Source provides the three full-collection reads the snapshot is built
// from. Implementations must return complete lists; the engine paginates
// client-side and never pushes filters upstream.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Subcategories(ctx context.Context) ([]SubCategory, error)
}

// Loader joins the three concurrent fetches into a Snapshot. A failed fetch
// degrades that collection to empty instead of failing the page: the worst
// outcome of a catalog load is an empty results view with a reset action.
type Loader struct {
	source Source
	logger *slog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, logger: logger}
}

// Load fetches products, categories and subcategories concurrently and waits
// for all three before returning. Errors are logged and degrade to empty
// slices; Load itself never fails.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	snap := &Snapshot{}
	var g errgroup.Group
	g.Go(func() error {
		products, err := l.source.Products(ctx)
		if err != nil {
			l.logger.Error("load products", slog.Any("error", err))
			return nil
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		cats, err := l.source.Categories(ctx)
		if err != nil {
			l.logger.Error("load categories", slog.Any("error", err))
			return nil
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		subs, err := l.source.Subcategories(ctx)
		if err != nil {
			l.logger.Error("load subcategories", slog.Any("error", err))
			return nil
		}
		snap.Subcategories = subs
		return nil
	})
	_ = g.Wait()
	return snap
}
