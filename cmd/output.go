package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/wistiakit/wistia"
)

// maxConcurrentShows bounds parallel show requests for multiple hashed ids
const maxConcurrentShows = 5

// writeOutput prints value as JSON or YAML, or the table rendering otherwise
func writeOutput(w io.Writer, format string, value any, table func() string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, table())
		return err
	}
}

// single unwraps one-element results so `show` of one id prints an object
func single[T any](items []T) any {
	if len(items) == 1 {
		return items[0]
	}
	return items
}

// fetchAll runs fetch for every id with bounded concurrency. Results keep
// argument order; the first error cancels the rest.
func fetchAll[T any](ctx context.Context, ids []string, fetch func(context.Context, string) (T, error)) ([]T, error) {
	results := make([]T, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentShows)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			item, err := fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			results[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// listFlags are the paging and sorting flags shared by list commands
type listFlags struct {
	page          int
	perPage       int
	sortBy        string
	sortDirection string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", wistia.DefaultPage, "page to fetch, starting at 1")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "items per page (1-100, default from config)")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "sort field: name, mediaCount, created or updated")
	cmd.Flags().StringVar(&f.sortDirection, "sort-direction", "", "sort direction: asc or desc")
}

// options starts from the configured defaults and applies the flags that were set
func (f *listFlags) options(cmd *cobra.Command) (wistia.ListOptions, error) {
	opts := cfg.ListOptions()

	if cmd.Flags().Changed("page") {
		opts.Page = f.page
	}
	if cmd.Flags().Changed("per-page") {
		opts.PerPage = f.perPage
	}
	if cmd.Flags().Changed("sort-by") {
		sortBy, err := wistia.ParseSortBy(f.sortBy)
		if err != nil {
			return opts, err
		}
		opts.SortBy = sortBy
	}
	if cmd.Flags().Changed("sort-direction") {
		dir, err := wistia.ParseSortDirection(strings.ToLower(f.sortDirection))
		if err != nil {
			return opts, err
		}
		opts.SortDirection = dir
	}

	return opts, nil
}
