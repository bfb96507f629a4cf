package bookinforepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ax71/Uts-Bookify/util/httpx"
)

const booksEndpoint = "https://api.api-ninjas.com/v1/books"

type httpRepo struct {
	apiKey string
	client *http.Client
}

func NewHTTP(apiKey string) Repo { return &httpRepo{apiKey: apiKey, client: httpx.Client()} }

func (r *httpRepo) Lookup(ctx context.Context, title string) (*Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		booksEndpoint+"?title="+url.QueryEscape(title), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("books api lookup failed: %s", resp.Status)
	}

	var out []struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		Year   string `json:"year"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &Info{Title: out[0].Title, Author: out[0].Author, Year: out[0].Year}, nil
}
