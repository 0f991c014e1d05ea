package repositories

import "context"

// ReportCache stores rendered reports until the next successful post.
type ReportCache interface {
	// Get decodes the cached value for key into dest and reports whether it was
	// found. The returned generation must be handed back to Set.
	Get(ctx context.Context, key string, dest any) (generation int64, found bool, err error)
	// Set stores value under key for the given generation. Values built for a
	// generation that has since been invalidated are dropped.
	Set(ctx context.Context, generation int64, key string, value any) error
	// Invalidate drops every cached report.
	Invalidate(ctx context.Context) error
}
