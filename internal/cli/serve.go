package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"lilutecno/internal/catalog"
	"lilutecno/internal/clock"
	"lilutecno/internal/config"
	"lilutecno/internal/domain"
	"lilutecno/internal/http/handlers"
	"lilutecno/internal/kv"
	applog "lilutecno/internal/log"
	"lilutecno/internal/repos"
)

type serveOptions struct {
	templates string
	rateLimit int
	noCSRF    bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the storefront HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, loadConfig(rootOpts), o)
		},
	}
	cmd.Flags().StringVar(&o.templates, "templates", "./web/templates", "directory of html views")
	cmd.Flags().IntVar(&o.rateLimit, "rate-limit", 60, "requests per minute per client (0 disables)")
	cmd.Flags().BoolVar(&o.noCSRF, "no-csrf", false, "disable csrf checks (local development only)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, o *serveOptions) error {
	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.CatalogFile != "" {
		n, err := importCatalog(db, cfg.CatalogFile)
		if err != nil {
			return err
		}
		applog.Info(nil, "catalog.import", map[string]any{"file": cfg.CatalogFile, "products": n})
	}
	cat, err := loadCatalog(db)
	if err != nil {
		return err
	}

	store, err := kv.Open(cfg.KVBackend, db, cfg.RedisURL)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	deps := handlers.NewDeps(cat, store, clock.Real(), cfg)
	go deps.Sessions.Run(ctx, time.Minute)

	app := handlers.NewApp(deps, handlers.AppOptions{
		Templates: o.templates,
		RateLimit: o.rateLimit,
		CSRF:      !o.noCSRF,
		AccessLog: true,
	})

	errc := make(chan error, 1)
	go func() { errc <- app.Listen(":" + cfg.Port) }()
	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "products": cat.Len(), "kv": cfg.KVBackend})

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.Info(nil, "server.stop", nil)
	return nil
}

func loadCatalog(db *sqlx.DB) (*catalog.Catalog, error) {
	raw, err := repos.NewProductRepo(db).All()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.FromRaw(raw)
}

// importCatalog validates a catalog file and upserts it into the products
// table. Ids are stored trimmed, and the catalog that would result from the
// import is checked as a whole before anything is written.
func importCatalog(db *sqlx.DB, path string) (int, error) {
	raw, err := catalog.LoadFile(path)
	if err != nil {
		return 0, err
	}
	products, err := catalog.Normalize(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for i := range raw {
		raw[i].ID = products[i].ID
	}

	repo := repos.NewProductRepo(db)
	existing, err := repo.All()
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	if _, err := catalog.Normalize(mergeRaw(existing, raw)); err != nil {
		return 0, fmt.Errorf("%s: resulting catalog: %w", path, err)
	}
	if err := repo.Upsert(raw); err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	return len(raw), nil
}

// mergeRaw replaces existing records by id and appends new ones, as Upsert does.
func mergeRaw(existing, incoming []domain.RawProduct) []domain.RawProduct {
	out := append([]domain.RawProduct(nil), existing...)
	pos := make(map[string]int, len(out))
	for i, r := range out {
		pos[r.ID] = i
	}
	for _, r := range incoming {
		if i, ok := pos[r.ID]; ok {
			out[i] = r
			continue
		}
		pos[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
