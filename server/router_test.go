package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"rangeview/server/config"
	"rangeview/server/equity"
	"rangeview/server/table"
)

func testApp(src equity.Source) *App {
	logger := zerolog.New(io.Discard)
	return &App{
		Cfg:    &config.Config{Table: config.Table{Footprint: table.DefaultFootprint, Seats: 6}},
		Logger: &logger,
		Source: func(hand string) equity.Source { return src },
	}
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, Router(testApp(nil)), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	require.Equal(t, "{\n  \"ok\": true\n}\n", rec.Body.String())
}

func TestHeatmapReady(t *testing.T) {
	src := equity.NewSource("fake", func(ctx context.Context) (equity.HeatmapResponse, error) {
		return equity.HeatmapResponse{Hands: []string{"AA", "AKs", "AKo"}, Equities: []float64{85, 67, 65}}, nil
	})
	rec := do(t, Router(testApp(src)), http.MethodGet, "/api/heatmap", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status string `json:"status"`
		Scale  string `json:"scale"`
		Cells  []struct {
			RankX  string  `json:"rankX"`
			RankY  string  `json:"rankY"`
			Hand   string  `json:"hand"`
			Equity float64 `json:"equity"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "ready", got.Status)
	require.Equal(t, "percent", got.Scale)
	require.Len(t, got.Cells, 3)
	require.Equal(t, "A", got.Cells[0].RankX)
	require.Equal(t, "A", got.Cells[0].RankY)
	require.Equal(t, got.Cells[1].RankX, got.Cells[2].RankY)
	require.Equal(t, got.Cells[1].RankY, got.Cells[2].RankX)
	require.Equal(t, 67.0, got.Cells[1].Equity)
}

func TestHeatmapHandCombos(t *testing.T) {
	src := equity.NewSource("fake", func(ctx context.Context) (equity.HeatmapResponse, error) {
		return equity.HeatmapResponse{Hands: []string{"AA"}, Equities: []float64{0.2}}, nil
	})
	h := Router(testApp(src))

	var got struct {
		HandCombos []string `json:"hand_combos"`
	}
	rec := do(t, h, http.MethodGet, "/api/heatmap?hand=AKo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.HandCombos, 12)
	require.Contains(t, got.HandCombos, "AsKh")
	require.NotContains(t, got.HandCombos, "AsKs")

	got.HandCombos = nil
	rec = do(t, h, http.MethodGet, "/api/heatmap?hand=AhKh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Empty(t, got.HandCombos)
	require.NotContains(t, rec.Body.String(), "hand_combos")
}

func TestHeatmapFailed(t *testing.T) {
	src := equity.NewSource("fake", func(ctx context.Context) (equity.HeatmapResponse, error) {
		return equity.HeatmapResponse{}, &equity.StatusError{Code: 500, Body: "boom"}
	})
	rec := do(t, Router(testApp(src)), http.MethodGet, "/api/heatmap", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "failed", got["status"])
	require.Contains(t, got["error"], "500")
	require.NotContains(t, got, "cells")
}

func TestHeatmapClientGone(t *testing.T) {
	release := make(chan struct{})
	src := equity.NewSource("slow", func(ctx context.Context) (equity.HeatmapResponse, error) {
		<-release
		return equity.HeatmapResponse{Hands: []string{"AA"}, Equities: []float64{0.85}}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/heatmap", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	Router(testApp(src)).ServeHTTP(rec, req)
	close(release)
	require.Empty(t, rec.Body.String())
}

func TestHistoryDisabledWithoutDB(t *testing.T) {
	rec := do(t, Router(testApp(nil)), http.MethodGet, "/api/heatmap/history", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLayoutEndpoint(t *testing.T) {
	h := Router(testApp(nil))

	rec := do(t, h, http.MethodGet, "/api/table/layout?seats=4&rx=350&ry=250", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Seats []table.SeatCoordinate `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Seats, 4)
	require.InDelta(t, 0, got.Seats[0].X, 1e-9)
	require.InDelta(t, -250, got.Seats[0].Y, 1e-9)
	require.InDelta(t, 350, got.Seats[1].X, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/table/layout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Seats, 6)

	rec = do(t, h, http.MethodGet, "/api/table/layout?seats=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "seat count")

	rec = do(t, h, http.MethodGet, "/api/table/layout?rx=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableEndpoint(t *testing.T) {
	h := Router(testApp(nil))
	body := []byte(`{"players":[{"username":"alice","chips":1000,"bet":10},{"username":"bob","chips":900,"bet":20}],"button":1}`)
	rec := do(t, h, http.MethodPost, "/api/table", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Seats []table.SeatView `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Seats, 2)
	require.Equal(t, "alice", got.Seats[0].Player.Username)
	require.Equal(t, table.BigBlind, got.Seats[0].Position)
	require.Equal(t, table.SmallBlind, got.Seats[1].Position)

	rec = do(t, h, http.MethodPost, "/api/table", []byte(`{"players":[]}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/table", []byte(`{`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
