// migrate aplica o imprime el esquema PostgreSQL embebido.
//
// Uso:
//
//	go run ./cmd/migrate up                 # usa DATABASE_URL / DB_* del entorno
//	go run ./cmd/migrate up --database-url postgres://...
//	go run ./cmd/migrate print > schema.sql
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Fulfillment-api/pkg/config"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	databaseURL string
	timeout     time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Esquema PostgreSQL de fulfillment-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "connection string; por defecto DATABASE_URL / DB_*")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "tiempo máximo de la migración")

	cmd.AddCommand(newUpCommand(opts))
	cmd.AddCommand(newPrintCommand())
	return cmd
}

func newUpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica el esquema (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUp(cmd.Context(), opts)
		},
	}
}

func newPrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Escribe el DDL embebido en stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), postgres.Schema())
			return err
		},
	}
}

func runUp(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if opts.databaseURL != "" {
		cfg.DB.DatabaseURL = opts.databaseURL
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}
	log.Info().Str("db", cfg.DB.DBName).Msg("esquema aplicado")
	return nil
}
