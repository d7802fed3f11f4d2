package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/discokit/disco-gen/pkg/config"
	"github.com/discokit/disco-gen/pkg/discovery"
	"github.com/discokit/disco-gen/pkg/runtime"
)

// ServiceEntry is one selectable row of the interactive listing.
type ServiceEntry struct {
	Index int
	ID    string
	Title string
	URL   string
}

// BuildLookupTable flattens a directory listing into the numbered table
// interactive mode prints. The table is built once, up front; selections
// resolve through it alone, so the listing cannot shift between printing
// and choosing.
func BuildLookupTable(dir *discovery.Directory, preferredOnly bool) []ServiceEntry {
	var entries []ServiceEntry
	for _, item := range dir.Items {
		if item == nil || item.DiscoveryRestURL == "" {
			continue
		}
		if preferredOnly && !item.Preferred {
			continue
		}
		id := item.ID
		if id == "" {
			id = item.Name + ":" + item.Version
		}
		entries = append(entries, ServiceEntry{
			ID:    id,
			Title: item.Title,
			URL:   item.DiscoveryRestURL,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	for i := range entries {
		entries[i].Index = i + 1
	}
	return entries
}

// ResolveSelection maps the user's line to a table entry: a number picks
// by index, anything else must match a service id exactly.
func ResolveSelection(entries []ServiceEntry, line string) (ServiceEntry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return ServiceEntry{}, errors.New("empty selection")
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(entries) {
			return ServiceEntry{}, fmt.Errorf("selection %d out of range 1-%d", n, len(entries))
		}
		return entries[n-1], nil
	}
	for _, e := range entries {
		if e.ID == line {
			return e, nil
		}
	}
	return ServiceEntry{}, fmt.Errorf("no service %q in the listing", line)
}

// RunInteractive lists the configured directory, reads a selection from in
// and generates the chosen service. It returns the path of the written
// file.
func RunInteractive(ctx context.Context, p GenerateParams, in io.Reader, out io.Writer) (string, error) {
	cfg, err := loadConfig(p.ConfigPath)
	if err != nil {
		return "", err
	}
	p = mergeConfig(p, cfg)

	entries, err := fetchLookupTable(ctx, cfg)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%4d  %-40s %s\n", e.Index, e.ID, e.Title)
	}
	fmt.Fprint(out, "Select a service (number or id): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	entry, err := ResolveSelection(entries, line)
	if err != nil {
		return "", err
	}

	doc, err := discovery.FetchDocument(ctx, runtime.RobustHTTPClient(), entry.URL)
	if err != nil {
		return "", err
	}
	p.Input = entry.URL
	return generateTo(p, doc)
}

func fetchLookupTable(ctx context.Context, cfg *config.Config) ([]ServiceEntry, error) {
	dir, err := discovery.FetchDirectory(ctx, runtime.RobustHTTPClient(), cfg.DirectoryURL)
	if err != nil {
		return nil, err
	}
	entries := BuildLookupTable(dir, !cfg.AllVersions)
	if len(entries) == 0 {
		return nil, errors.New("the directory listed no services")
	}
	return entries, nil
}
