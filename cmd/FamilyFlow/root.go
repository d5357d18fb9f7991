package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/natindo/FamilyFlow/internal/bot"
	"github.com/natindo/FamilyFlow/internal/config"
	"github.com/natindo/FamilyFlow/internal/database"
	"github.com/natindo/FamilyFlow/internal/export"
	"github.com/natindo/FamilyFlow/internal/flow"
	"github.com/natindo/FamilyFlow/internal/log"
	"github.com/natindo/FamilyFlow/internal/services"
)

func newRoot() *cobra.Command {
	var (
		configPath string
		cfg        *config.Config
	)

	cmd := &cobra.Command{
		Use:          "familyflow",
		Short:        "Family schedule bot",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log.SetLevel(log.ParseLevel(loaded.LogLevel))
			cfg = loaded
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "familyflow.yaml", "path to the YAML config file")

	getConfig := func() *config.Config { return cfg }
	cmd.AddCommand(newBotCmd(getConfig))
	cmd.AddCommand(newMigrateCmd(getConfig))
	cmd.AddCommand(newExportCmd(getConfig))
	return cmd
}

func newBotCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and the reminder notifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pool, err := openDatabase(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			store := services.NewEventStore(pool, loc, cfg.NotifyBefore)

			api, err := bot.NewAPI(cfg.TelegramToken)
			if err != nil {
				return fmt.Errorf("create bot: %w", err)
			}

			notifier := services.NewNotifier(store, api, loc)
			if err := notifier.Start(cfg.NotifySchedule); err != nil {
				return err
			}
			defer notifier.Stop()

			locations := append(flow.Locations(), cfg.ExtraLocations...)
			engine := flow.NewEngine(cfg.Children, locations)
			b := bot.New(api, store, engine, flow.NewDirectorySearcher(locations), loc)

			u := tgbotapi.NewUpdate(0)
			u.Timeout = 60
			updates := api.GetUpdatesChan(u)
			defer api.StopReceivingUpdates()

			log.Info("bot running", "children", len(cfg.Children), "timezone", loc.String())
			return b.Run(ctx, updates)
		},
	}
}

func newMigrateCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := openDatabase(cmd.Context(), getConfig().DatabaseURL)
			if err != nil {
				return err
			}
			pool.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newExportCmd(getConfig func() *config.Config) *cobra.Command {
	var (
		chatID int64
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a chat's events to an .ics file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(cfg.ExportDir, export.FileName(chatID))
			}

			pool, err := openDatabase(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			evs, err := services.NewEventStore(pool, loc, cfg.NotifyBefore).AllEvents(cmd.Context(), chatID)
			if err != nil {
				return fmt.Errorf("load events: %w", err)
			}
			if err := export.WriteFile(afero.NewOsFs(), out, evs, loc, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d event(s) to %s\n", len(evs), out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&chatID, "chat", 0, "Telegram chat id to export")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <export_dir>/familyflow-<chat>.ics)")
	_ = cmd.MarkFlagRequired("chat")
	return cmd
}

// openDatabase connects and applies the schema.
func openDatabase(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := database.ConnectPostgres(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
