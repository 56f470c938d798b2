package health

import "context"

// CatalogChecker reports on the loaded recipe catalog.
type CatalogChecker interface {
	Ping(ctx context.Context) error
	Len() int
}

// DBPinger checks artifact storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ImageDirChecker checks the image directory.
type ImageDirChecker interface {
	DirExists() bool
}
