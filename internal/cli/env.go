// Package cli holds the pricing_cli commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/core/services"
	"github.com/SscSPs/landed_pricing_app/internal/platform/config"
	"github.com/SscSPs/landed_pricing_app/internal/platform/logging"
	"github.com/SscSPs/landed_pricing_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/landed_pricing_app/internal/repositories/memory"
	"github.com/SscSPs/landed_pricing_app/internal/spreadsheet"
	"github.com/SscSPs/landed_pricing_app/pkg/database"
	"github.com/spf13/cobra"
)

// operator is the identity CLI runs act as.
var operator = domain.Actor{ID: "pricing-cli", Role: domain.RoleAdmin}

// storeFlags select where a command reads and writes pricing data.
type storeFlags struct {
	memory   bool
	workbook string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.memory, "memory", false, "use an in-memory store instead of PostgreSQL (dry run)")
	cmd.Flags().StringVarP(&f.workbook, "workbook", "w", "", "reference workbook loaded into the in-memory store")
}

// env is the wiring shared by every command.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	closers  []io.Closer
	cleanup  []func()
}

func (e *env) Close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	for _, c := range e.closers {
		_ = c.Close()
	}
}

// loadEnv reads configuration and builds a logger that only reports warnings
// unless verbose is set.
func loadEnv(verbose bool) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, closer := logging.New(logging.Options{Level: level, File: cfg.LogFile, MaxSizeMB: cfg.LogMaxSizeMB, MaxBackups: cfg.LogMaxBackups})
	slog.SetDefault(logger)
	return &env{cfg: cfg, logger: logger, closers: []io.Closer{closer}}, nil
}

// connect wires services against PostgreSQL or, with --memory, against a
// fresh in-memory store seeded from the workbook.
func (e *env) connect(ctx context.Context, flags storeFlags) error {
	var repos portsrepo.RepositoryProvider
	if flags.memory {
		repos = memory.NewStore().Provider()
	} else {
		pool, err := database.NewPgxPool(ctx, e.cfg.DatabaseURL, true)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		e.cleanup = append(e.cleanup, pool.Close)
		repos = pgsql.NewRepositoryProvider(pool)
	}
	e.services = services.NewServiceContainer(e.cfg, repos, nil, nil)

	if flags.memory && flags.workbook != "" {
		if _, err := e.importWorkbook(ctx, flags.workbook); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) importWorkbook(ctx context.Context, path string) (*portssvc.ImportSummary, error) {
	data, err := spreadsheet.NewImporter(nil).ImportFile(path)
	if err != nil {
		return nil, err
	}
	return e.services.Reference.ImportReferences(ctx, *data)
}
