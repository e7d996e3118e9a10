package domain

import "context"

// TemplateRepository defines read access to visual templates.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*TemplateConfig, error)
}

// SlideRepository defines read access to slides.
type SlideRepository interface {
	GetByID(ctx context.Context, id string) (*SlideData, error)
	ListByCarousel(ctx context.Context, carouselID string) ([]SlideData, error)
}

// CarouselRepository defines read access to carousels.
type CarouselRepository interface {
	GetByID(ctx context.Context, id string) (*Carousel, error)
}

// ExportRepository handles export record persistence. ClaimPending flips a
// pending record into processing hands: it returns ErrExportNotPending when the
// record was already completed or failed, acting as the optimistic
// single-writer guard.
type ExportRepository interface {
	GetByID(ctx context.Context, id string) (*ExportRecord, error)
	ClaimPending(ctx context.Context, id string) error
	MarkReady(ctx context.Context, id string, archivePath string) error
	MarkFailed(ctx context.Context, id string, message string) error
}

// BrandKitRepository supplies brand identity for a user. Logo resolution is
// done upstream; LogoURL arrives ready to embed.
type BrandKitRepository interface {
	GetByUser(ctx context.Context, userID string) (*BrandKit, error)
}

// AssetPathLookup resolves a library asset id into its stored object key.
type AssetPathLookup interface {
	StoredPath(ctx context.Context, assetID string) (string, error)
}
