// Package session decides which résumé snapshot the builder starts from.
package session

import (
	"context"

	"github.com/jonathan/github-resume/internal/types"
)

// Source identifies where a restored snapshot came from.
type Source string

const (
	SourceNone  Source = "none"
	SourceLink  Source = "link"
	SourceCache Source = "cache"
)

// LinkDecoder turns a link or query string into a snapshot, or nil.
type LinkDecoder interface {
	Decode(source string) *types.ResumeData
}

// SnapshotLoader returns a fresh cached snapshot, or nil.
type SnapshotLoader interface {
	Load(ctx context.Context) *types.ResumeData
}

// Restore returns the starting snapshot. A snapshot carried by the link wins
// over the cache, and the cache is not consulted at all in that case.
// Either collaborator may be nil.
func Restore(ctx context.Context, query string, links LinkDecoder, cached SnapshotLoader) (*types.ResumeData, Source) {
	if links != nil && query != "" {
		if data := links.Decode(query); data != nil {
			return data, SourceLink
		}
	}
	if cached != nil {
		if data := cached.Load(ctx); data != nil {
			return data, SourceCache
		}
	}
	return nil, SourceNone
}
