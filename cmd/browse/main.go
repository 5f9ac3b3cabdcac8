// Command browse prints the artist catalog to the terminal, filtered and
// rendered the same way the HTTP listing renders text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/artistly/internal/adapters/dataset"
	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/vocab"
)

const defaultMaxSearchLength = 128

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type options struct {
	dataset    string
	term       string
	seed       string
	sort       string
	view       string
	sidebar    bool
	categories multiFlag
	locations  multiFlag
	fees       multiFlag
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Stderr.WriteString("browse: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.dataset, "dataset", "", "Directory holding artists.json, categories.json and options.json (default: embedded)")
	fs.StringVar(&o.term, "q", "", "Search term matched against name, bio, location and categories")
	fs.StringVar(&o.seed, "seed", "", "Category pre-selected as if arriving from a category link")
	fs.StringVar(&o.sort, "sort", "", "Sort order: relevance, rating, reviews, name or newest")
	fs.StringVar(&o.view, "view", string(present.ModeGrid), "Card layout: grid or list")
	fs.BoolVar(&o.sidebar, "sidebar", false, "Print the filter sidebar above the results")
	fs.Var(&o.categories, "category", "Category filter (repeatable)")
	fs.Var(&o.locations, "location", "Location filter (repeatable)")
	fs.Var(&o.fees, "fee", "Fee range filter (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// run loads the catalog, applies the flags as filters and renders the result.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	mode, err := present.ParseMode(o.view)
	if err != nil {
		return err
	}
	order, err := filter.ParseOrder(o.sort)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(ctx, o.dataset)
	if err != nil {
		return err
	}

	state := filter.NewState(ds.Vocabulary, filter.WithMaxTermLength(defaultMaxSearchLength))
	if o.seed != "" {
		if _, err := state.SeedCategory(o.seed); err != nil {
			return err
		}
	}
	if err := state.SetTerm(o.term); err != nil {
		return err
	}
	for _, f := range []struct {
		flag   string
		facet  vocab.Facet
		values []string
	}{
		{"category", vocab.FacetCategory, o.categories},
		{"location", vocab.FacetLocation, o.locations},
		{"fee", vocab.FacetFeeRange, o.fees},
	} {
		for _, v := range f.values {
			if _, err := state.Add(f.facet, v); err != nil {
				return fmt.Errorf("-%s %q: %w", f.flag, v, err)
			}
		}
	}

	result := filter.Apply(ds.Artists, state)
	filter.Sort(result, order)

	view := present.View{Mode: mode, Artists: result, Total: len(ds.Artists)}
	if o.sidebar {
		view.Sidebar = &present.Sidebar{Vocabulary: ds.Vocabulary, Filters: state}
	}
	return present.Render(stdout, view)
}
