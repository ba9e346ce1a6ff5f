package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"rangeview/server/config"
	"rangeview/server/equity"
	"rangeview/server/logging"
	"rangeview/server/store"
	"rangeview/server/table"
)

func main() {
	logger := logging.GetZeroLogger("rangeview", os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}
	if !cfg.Color {
		pterm.DisableColor()
	}

	var migrate, heatmapMode, tableMode bool
	var hand string
	for _, a := range os.Args[1:] {
		switch {
		case a == "--migrate":
			migrate = true
		case a == "--heatmap":
			heatmapMode = true
		case a == "--table":
			tableMode = true
		case strings.HasPrefix(a, "--hand="):
			hand = strings.TrimPrefix(a, "--hand=")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch {
	case tableMode:
		if err := runTable(cfg); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		return
	case heatmapMode:
		os.Exit(runHeatmap(ctx, cfg, hand, logger))
	}

	var db *store.DB
	if cfg.DatabaseURL != "" {
		db, err = store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not open database")
		}
		defer db.Close(context.Background())
		if cfg.AutoMigrate || migrate {
			if err := store.Migrate(ctx, db); err != nil {
				logger.Fatal().Err(err).Msg("migrate failed")
			}
			logger.Info().Msg("migrated")
		}
	} else if migrate {
		logger.Fatal().Msg("--migrate needs DATABASE_URL")
	}
	if migrate {
		return
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      Router(NewApp(cfg, db, logger)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.EquityTimeout + 15*time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Msgf("listening on http://localhost:%s (Ctrl+C to stop)", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// runHeatmap fetches one grid and prints it. The exit code is 1 when the
// session failed or was interrupted.
func runHeatmap(ctx context.Context, cfg *config.Config, hand string, logger *zerolog.Logger) int {
	client := equity.NewClient(cfg.EquityURL, cfg.EquityTimeout)
	src := equity.RangeHeatmap(client)
	if hand != "" {
		src = equity.HandVsRangeHeatmap(client, hand)
	}

	spinner, _ := pterm.DefaultSpinner.Start("Fetching equities from " + cfg.EquityURL + " ...")
	sess := equity.Start(ctx, src, equity.Options{Logger: logger})
	defer sess.Close()
	snap := sess.Wait(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}

	switch snap.Status {
	case equity.Ready:
		grid, err := renderHeatmap(snap.Grid, cfg.Color, nil)
		if err != nil {
			pterm.Error.Println(err)
			return 1
		}
		if line := renderHandCombos(hand); line != "" {
			pterm.Info.Println(line)
		}
		fmt.Println(grid)
		fmt.Println(renderSummary(snap.Grid))
		return 0
	case equity.Failed:
		pterm.Error.Println("Error loading data: " + snap.Reason)
		return 1
	default:
		pterm.Warning.Println("interrupted before the equity service answered")
		return 1
	}
}

func runTable(cfg *config.Config) error {
	players := make([]table.Player, cfg.Table.Seats)
	for i := range players {
		players[i] = table.Player{Username: fmt.Sprintf("player%d", i+1)}
	}
	views, err := table.Seat(players, cfg.Table.Footprint, cfg.Table.Button)
	if err != nil {
		return err
	}
	out, err := renderTable(views, cfg.Table.Footprint, 64, 22)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
