package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultDirectoryURL is the public discovery directory listing.
const DefaultDirectoryURL = "https://www.googleapis.com/discovery/v1/apis"

// Directory represents a discovery directory list
type Directory struct {
	Kind             string           `json:"kind,omitempty"`
	DiscoveryVersion string           `json:"discoveryVersion,omitempty"`
	Items            []*DirectoryItem `json:"items"`
}

// DirectoryItem represents a single API in the discovery directory
type DirectoryItem struct {
	Kind              string `json:"kind,omitempty"`
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Version           string `json:"version,omitempty"`
	Title             string `json:"title,omitempty"`
	Description       string `json:"description,omitempty"`
	DiscoveryRestURL  string `json:"discoveryRestUrl"`
	DocumentationLink string `json:"documentationLink,omitempty"`
	Preferred         bool   `json:"preferred,omitempty"`
}

// Preferred returns the items marked preferred, i.e. the recommended
// version of each API.
func (d *Directory) Preferred() []*DirectoryItem {
	var out []*DirectoryItem
	for _, it := range d.Items {
		if it.Preferred {
			out = append(out, it)
		}
	}
	return out
}

// FetchDirectory downloads and decodes a directory listing.
func FetchDirectory(ctx context.Context, hc *http.Client, url string) (*Directory, error) {
	body, err := fetch(ctx, hc, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var dir Directory
	if err := json.NewDecoder(body).Decode(&dir); err != nil {
		return nil, fmt.Errorf("decoding directory listing: %w", err)
	}
	return &dir, nil
}

// FetchDocument downloads and decodes a single discovery document.
func FetchDocument(ctx context.Context, hc *http.Client, url string) (*Document, error) {
	body, err := fetch(ctx, hc, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Decode(body)
}

func fetch(ctx context.Context, hc *http.Client, url string) (io.ReadCloser, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
