package ingest

import "context"

// FileEntry is one discovered document, in directory listing order.
type FileEntry struct {
	Name string // base name, as shown in the report
	Path string // Dir joined with Name
}

// DirStats summarizes a directory listing.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// Lister is the behavior the batch command depends on.
type Lister interface {
	// ListDirectory returns the matching files directly under root.
	ListDirectory(ctx context.Context, root string) ([]FileEntry, DirStats, error)
}
