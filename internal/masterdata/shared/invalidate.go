package shared

import "context"

// CatalogInvalidator is notified after any successful catalog write so the
// storefront snapshot cache can be refreshed out of band.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// NoopInvalidator satisfies CatalogInvalidator for tests and tooling.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateCatalog(context.Context) error { return nil }

// MediaPruner schedules deletion of hosted images a successful write
// orphaned. Implementations decide which URLs actually live on the host.
type MediaPruner interface {
	PruneMedia(ctx context.Context, imageURLs []string) error
}

// NoopPruner satisfies MediaPruner for tests and tooling.
type NoopPruner struct{}

func (NoopPruner) PruneMedia(context.Context, []string) error { return nil }
