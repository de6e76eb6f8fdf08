package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixturelab/planogram/internal/api"
	"github.com/fixturelab/planogram/pkg/editor"
	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/store"
)

// serveCommand creates the serve command running the local HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		template  string
		draft     string
		storeKind string
		storeAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API over an editing session",
		Long: `Run the local HTTP API over an editing session.

The session starts from --template (an empty instantiation) or --draft
(a normalized persisted layout). Drafts saved through the API go to the
configured store backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := initialLayout(template, draft)
			if err != nil {
				return err
			}

			st, err := newStore(cmd.Context(), storeKind, storeAddr)
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer st.Close()

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			session := editor.NewSession(initial, editor.DefaultPolicy())
			server := api.NewServer(session, st, runner, c.Logger)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			c.Logger.Info("serving", "addr", addr, "store", storeKind)
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8764", "listen address")
	cmd.Flags().StringVar(&template, "template", "", "fixture template to instantiate (TOML)")
	cmd.Flags().StringVar(&draft, "draft", "", "persisted draft to edit (JSON)")
	cmd.Flags().StringVar(&storeKind, "store", "file", "draft store backend: memory, file, redis, or mongo")
	cmd.Flags().StringVar(&storeAddr, "store-addr", "", "store address (redis addr or mongo URI)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// initialLayout resolves the session's starting snapshot from the flags.
// With neither flag set, the session starts from an empty layout and
// compartments must come from a loaded draft.
func initialLayout(template, draft string) (layout.Layout, error) {
	switch {
	case template != "" && draft != "":
		return layout.Layout{}, fmt.Errorf("--template and --draft are mutually exclusive")
	case template != "":
		t, err := layout.LoadTemplate(template)
		if err != nil {
			return layout.Layout{}, err
		}
		return t.Instantiate(), nil
	case draft != "":
		blob, err := os.ReadFile(draft)
		if err != nil {
			return layout.Layout{}, fmt.Errorf("read draft %s: %w", draft, err)
		}
		return layout.ParseDraft(blob)
	default:
		return layout.Layout{}, nil
	}
}

// newStore builds the draft store backend selected by flags.
func newStore(ctx context.Context, kind, addr string) (store.Store, error) {
	switch kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore("")
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: addr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: addr})
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}
