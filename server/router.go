package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"rangeview/server/config"
	"rangeview/server/equity"
	"rangeview/server/hands"
	"rangeview/server/heatmap"
	"rangeview/server/logging"
	"rangeview/server/store"
	"rangeview/server/table"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// App carries what the handlers need. DB may be nil.
type App struct {
	Cfg    *config.Config
	DB     *store.DB
	Logger *zerolog.Logger
	// Source picks the request a heatmap session issues; hand is "" for the plain range heatmap.
	Source func(hand string) equity.Source
}

func NewApp(cfg *config.Config, db *store.DB, logger *zerolog.Logger) *App {
	client := equity.NewClient(cfg.EquityURL, cfg.EquityTimeout)
	return &App{
		Cfg:    cfg,
		DB:     db,
		Logger: logger,
		Source: func(hand string) equity.Source {
			if hand == "" {
				return equity.RangeHeatmap(client)
			}
			return equity.HandVsRangeHeatmap(client, hand)
		},
	}
}

func Router(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/api/health", app.handleHealth)
	r.Get("/api/heatmap", app.handleHeatmap)
	r.Get("/api/heatmap/history", app.handleHistory)
	r.Get("/api/heatmap/history/{id}", app.handleHistoryCells)
	r.Get("/api/table/layout", app.handleLayout)
	r.Post("/api/table", app.handleTable)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type heatmapPayload struct {
	SessionID  string           `json:"session_id"`
	Source     string           `json:"source"`
	Status     equity.Status    `json:"status"`
	Cells      []heatmap.Cell   `json:"cells"`
	Scale      heatmap.Scale    `json:"scale"`
	Summary    heatmap.Summary  `json:"summary"`
	Coverage   heatmap.Coverage `json:"coverage"`
	HandCombos []string         `json:"hand_combos,omitempty"` // hero hand holdings, hand-vs-range only
}

// The database is optional; when configured, health includes a ping.
func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		writeJSON(w, map[string]any{"ok": true})
		return
	}
	if err := app.DB.Ping(r.Context()); err != nil {
		writeJSONStatus(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": err.Error()})
		return
	}
	writeJSON(w, map[string]any{"ok": true, "db": "ok"})
}

// One session per request; leaving early closes it and drops the late answer.
func (app *App) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	hand := strings.TrimSpace(r.URL.Query().Get("hand"))
	logger := app.Logger
	var combos []string
	if hand != "" {
		l := app.Logger.With().Str(logging.HandKey, hand).Logger()
		logger = &l
		combos = handCombos(hand)
	}
	sess := equity.Start(r.Context(), app.Source(hand), equity.Options{
		Logger:   logger,
		OnSettle: app.recordSettled,
	})
	defer sess.Close()

	snap := sess.Wait(r.Context())
	switch snap.Status {
	case equity.Ready:
		writeJSON(w, heatmapPayload{
			SessionID:  sess.ID.String(),
			Source:     sess.Source(),
			Status:     snap.Status,
			Cells:      snap.Grid,
			Scale:      heatmap.DetectScale(snap.Grid),
			Summary:    heatmap.Summarize(snap.Grid),
			Coverage:   heatmap.CheckCoverage(snap.Grid),
			HandCombos: combos,
		})
	case equity.Failed:
		writeJSONStatus(w, http.StatusBadGateway, map[string]any{
			"session_id": sess.ID.String(),
			"status":     snap.Status,
			"error":      snap.Reason,
		})
	default:
		logger.Debug().Str(logging.SessionIDKey, sess.ID.String()).Msg("client left before the heatmap settled")
	}
}

// handCombos expands a hand class such as "AKs". Concrete holdings like
// "AhKh" are passed to the equity service as is and yield nil.
func handCombos(code string) []string {
	h, err := hands.Parse(code)
	if err != nil {
		return nil
	}
	combos, err := hands.ComboLabels(h)
	if err != nil {
		return nil
	}
	return combos
}

func (app *App) recordSettled(id uuid.UUID, source string, snap equity.Snapshot) {
	if app.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var err error
	switch snap.Status {
	case equity.Ready:
		_, err = app.DB.RecordSnapshot(ctx, id.String(), source, snap.Grid)
	case equity.Failed:
		_, err = app.DB.RecordFailure(ctx, id.String(), source, snap.Reason)
	}
	if err != nil {
		app.Logger.Error().Err(err).Str(logging.SessionIDKey, id.String()).Msg("could not record heatmap snapshot")
	}
}

func (app *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		http.Error(w, "history disabled: DATABASE_URL not set", http.StatusServiceUnavailable)
		return
	}
	limit := atoiDef(r.URL.Query().Get("limit"), 50)
	rows, err := app.DB.RecentSnapshots(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (app *App) handleHistoryCells(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		http.Error(w, "history disabled: DATABASE_URL not set", http.StatusServiceUnavailable)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad snapshot id", http.StatusBadRequest)
		return
	}
	cells, err := app.DB.SnapshotCells(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"id": id, "cells": cells})
}

func (app *App) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fp := app.Cfg.Table.Footprint
	seats := atoiDef(q.Get("seats"), app.Cfg.Table.Seats)
	rx, err := floatDef(q.Get("rx"), fp.RadiusX)
	if err != nil {
		http.Error(w, "bad rx", http.StatusBadRequest)
		return
	}
	ry, err := floatDef(q.Get("ry"), fp.RadiusY)
	if err != nil {
		http.Error(w, "bad ry", http.StatusBadRequest)
		return
	}
	coords, err := table.Layout(seats, rx, ry)
	if err != nil {
		app.Logger.Debug().Int(logging.SeatCountKey, seats).Err(err).Msg("layout rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"seats": coords, "radius_x": rx, "radius_y": ry})
}

type tableRequest struct {
	Players []table.Player `json:"players"`
	Button  *int           `json:"button"`
}

func (app *App) handleTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	button := app.Cfg.Table.Button
	if req.Button != nil {
		button = *req.Button
	}
	views, err := table.Seat(req.Players, app.Cfg.Table.Footprint, button)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"footprint": app.Cfg.Table.Footprint, "seats": views})
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatDef(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
