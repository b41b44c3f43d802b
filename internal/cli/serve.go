package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukaszlap/paragonyOSA/internal/assistant"
	"github.com/lukaszlap/paragonyOSA/internal/config"
	"github.com/lukaszlap/paragonyOSA/internal/gateway"
	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the assistant API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			dbPath := cfg.Database.Path
			if !filepath.IsAbs(dbPath) && dbPath != ":memory:" {
				dbPath = filepath.Join(paths.Data, dbPath)
			}
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()
			log.Info().Str("path", dbPath).Msg("database ready")

			client, err := llm.FromConfig(cfg.Assistant, log)
			if err != nil {
				return fmt.Errorf("configuring model client: %w", err)
			}

			analyzer := assistant.NewAnalyzer(client, cfg.Assistant.MaxTokens, log)
			exec := assistant.NewExecutor(db, log)

			var retriever assistant.Retriever
			if cfg.Docs.DocsEnabled() {
				retriever = assistant.NewDocsRetriever(db, log)
			} else {
				log.Info().Msg("documentation retrieval disabled")
			}

			sessions := assistant.NewManager(
				client,
				llm.ChatOptions{
					MaxTokens:   cfg.Assistant.MaxTokens,
					Temperature: cfg.Assistant.Temperature,
				},
				analyzer,
				exec,
				retriever,
				cfg.Docs.MaxContextChars,
				log,
			)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := gateway.New(cfg.Server, db, sessions, log)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}
