package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/logik/assets"
	"github.com/robalobadob/logik/internal/config"
	"github.com/robalobadob/logik/internal/console"
	"github.com/robalobadob/logik/internal/game"
	"github.com/robalobadob/logik/internal/httpserver"
	"github.com/robalobadob/logik/internal/metrics"
	"github.com/robalobadob/logik/internal/secret"
	"github.com/robalobadob/logik/internal/stats"
	"github.com/robalobadob/logik/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	root := &cobra.Command{
		Use:          "logik",
		Short:        "Logik - guess the 3-digit code",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(cfg))
	root.AddCommand(newPlayCommand(cfg))
	return root
}

func newServeCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over a JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			sts, err := stats.Open()
			if err != nil {
				log.Error().Err(err).Msg("failed to open stats database")
				return err
			}
			defer sts.Close()

			srv := httpserver.New(cfg, secret.New(nil), store.NewMemoryStore(), sts, metrics.New())
			log.Info().Str("port", cfg.Port).Msg("starting logik server")
			if err := srv.Start(cmd.Context(), ":"+cfg.Port); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port")
	return cmd
}

func newPlayCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			howTo, err := assets.HowToPlay()
			if err != nil {
				log.Warn().Err(err).Msg("load how-to-play text")
			}
			e := game.New(secret.New(nil))
			return console.New(e, cmd.InOrStdin(), cmd.OutOrStdout(), howTo).Run()
		},
	}
}
