package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/pkg/catalog"
	"github.com/fixturelab/planogram/pkg/httputil"
	"github.com/fixturelab/planogram/pkg/layout"
)

// catalogCommand creates the product catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect product catalogs and check drafts against them",
	}

	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogCheckCommand())

	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "show [file-or-url]",
		Short: "Validate a product catalog and list its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, args[0], noCache)
			if err != nil {
				return err
			}

			for _, e := range cat.Entries() {
				printKeyValue(e.ID, fmt.Sprintf("%s  %gx%g  %s",
					e.Classification, e.Width, e.Height, stackableLabel(e.Stackable)))
			}

			printNewline()
			printSuccess("Catalog is valid (%d entries)", cat.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable remote response caching")
	return cmd
}

// catalogCheckCommand creates the "catalog check" subcommand, which verifies
// that every SKU placed in a draft still exists in the catalog.
func (c *CLI) catalogCheckCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "check [draft.json] [catalog]",
		Short: "Report draft items whose SKU is missing from the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.ReadFile(args[0])
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd, args[1], noCache)
			if err != nil {
				return err
			}

			missing := 0
			for _, comp := range l.Compartments {
				for _, row := range comp.Rows {
					for _, stack := range row.Stacks {
						for _, it := range stack.Items {
							if it.IsPlaceholder() || it.SKU == "" {
								continue
							}
							if _, err := cat.Get(it.SKU); err != nil {
								printDetail("%s/%s  %s", comp.ID, row.ID, StyleConflict.Render(it.SKU))
								missing++
							}
						}
					}
				}
			}

			if missing > 0 {
				printWarning("%d items reference unknown SKUs", missing)
			} else {
				printSuccess("All placed SKUs exist in the catalog")
			}
			printStats(len(l.Compartments), l.ItemCount(), missing, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable remote response caching")
	return cmd
}

// loadCatalog reads a catalog from a local file or, for http(s) sources,
// fetches it with retry and response caching.
func loadCatalog(cmd *cobra.Command, src string, noCache bool) (*catalog.Catalog, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return catalog.Load(src)
	}

	var respCache *httputil.Cache
	if !noCache {
		if dir, err := cacheDir(); err == nil {
			respCache, _ = httputil.NewCache(dir, catalog.RemoteTTL)
		}
	}

	spinner := newSpinnerWithContext(cmd.Context(), "Fetching catalog...")
	spinner.Start()
	cat, err := catalog.NewFetcher(nil, respCache).Fetch(cmd.Context(), src)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return nil, err
	}
	spinner.Stop()
	return cat, nil
}

func stackableLabel(stackable bool) string {
	if stackable {
		return "stackable"
	}
	return "base only"
}
