package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "checkers/internal/api/http"
	"checkers/internal/api/ws"
	"checkers/internal/config"
	"checkers/internal/console"
	"checkers/internal/logx"
	"checkers/internal/store"
	"checkers/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "checkers",
		Usage: "two-player checkers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
				Value: cfg.LogLevel,
			},
		},
		Before: func(cCtx *cli.Context) error {
			logx.Configure(cCtx.String("log-level"), cfg.LogPretty)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the board over HTTP and WebSocket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "listen address",
						Value:   cfg.HTTPAddr,
					},
				},
				Action: func(cCtx *cli.Context) error {
					cfg.HTTPAddr = cCtx.String("addr")
					return serve(cCtx.Context, cfg)
				},
			},
			{
				Name:  "play",
				Usage: "play hot-seat in the terminal",
				Action: func(cCtx *cli.Context) error {
					return console.Run(os.Stdin, os.Stdout, table.New(store.NewMemoryStore(cfg.HistoryLimit), nil))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers")
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.GinMode)

	mem := store.NewMemoryStore(cfg.HistoryLimit)
	hub := ws.NewHub(nil, cfg.WSAllowAllOrigins)
	tb := table.New(mem, hub)
	hub.SetTable(tb)
	r := httpapi.SetupRouter(tb, hub)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
