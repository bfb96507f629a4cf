package bookinforepo

import "context"

// Info is what the external books API knows about a title.
type Info struct {
	Title  string
	Author string
	Year   string
}

type Repo interface {
	// Lookup returns the best match for a title, or nil when the API has none.
	Lookup(ctx context.Context, title string) (*Info, error)
}
