package http

import "context"

// PageFetcher fetches one page of items starting after the given
// cursor. It returns the items, the cursor for the next page (empty
// when there are no more pages), and any error.
type PageFetcher[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// Collect drains a cursor-paginated endpoint into a single slice.
// pageLimit caps the number of pages fetched (0 means no cap).
func Collect[T any](ctx context.Context, fetch PageFetcher[T], pageLimit int) ([]T, error) {
	var all []T
	cursor := ""
	for page := 0; ; page++ {
		if pageLimit > 0 && page >= pageLimit {
			return all, nil
		}

		items, next, err := fetch(ctx, cursor)
		if err != nil {
			return all, err
		}
		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		cursor = next
	}
}
