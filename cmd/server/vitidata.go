package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"
	configsqlite "vitibrasil-backend/lib/configutil/sqlite"
	"vitibrasil-backend/lib/vitibrasil"
	"vitibrasil-backend/services/auth"
	"vitibrasil-backend/services/vitidata"
	"vitibrasil-backend/services/vitidata/db"

	"github.com/go-chi/chi/v5"
)

type PortalConfig struct {
	BaseUrl string `json:"base_url"`
	// defaults to 30
	TimeoutSeconds int `json:"timeout_seconds"`
}

type RefreshConfig struct {
	Enable bool `json:"enable"`
	// defaults to 24
	IntervalHours int `json:"interval_hours"`
}

type VitidataConfig struct {
	Database configsqlite.Struct `json:"database"`
	Portal   PortalConfig        `json:"portal"`
	Refresh  RefreshConfig       `json:"refresh"`
}

func InitVitidata(
	ctx context.Context,
	router chi.Router,
	authService auth.Service,
	cfg VitidataConfig,
	refreshNow bool,
) error {
	sqlite, err := cfg.Database.OpenDB(db.Schema)
	if err != nil {
		return err
	}
	store := vitidata.NewStore(sqlite)

	client := vitibrasil.NewClient(vitibrasil.ClientOptions{
		BaseUrl: cfg.Portal.BaseUrl,
		Timeout: time.Duration(cfg.Portal.TimeoutSeconds) * time.Second,
	})
	service := vitidata.NewService(client, store, vitidata.Options{})

	router.Group(func(r chi.Router) {
		r.Use(authService.Middleware)

		r.Get("/producao", func(w http.ResponseWriter, req *http.Request) {
			year, ok := queryYear(w, req)
			if !ok {
				return
			}
			res, err := service.Production(req.Context(), vitidata.ProductionQuery{
				Year:     year,
				Category: req.URL.Query().Get("category"),
				Product:  req.URL.Query().Get("product"),
			})
			writeResult(w, res, err)
		})
		r.Get("/processamento", func(w http.ResponseWriter, req *http.Request) {
			year, ok := queryYear(w, req)
			if !ok {
				return
			}
			res, err := service.Processing(req.Context(), vitidata.ProcessingQuery{
				Year:    year,
				Product: req.URL.Query().Get("product"),
				Group:   req.URL.Query().Get("group"),
				Cultive: req.URL.Query().Get("cultive"),
			})
			writeResult(w, res, err)
		})
		r.Get("/comercializacao", func(w http.ResponseWriter, req *http.Request) {
			year, ok := queryYear(w, req)
			if !ok {
				return
			}
			res, err := service.Commercialization(req.Context(), vitidata.CommercializationQuery{
				Year:    year,
				Group:   req.URL.Query().Get("group"),
				Product: req.URL.Query().Get("product"),
			})
			writeResult(w, res, err)
		})
		r.Get("/importacao", func(w http.ResponseWriter, req *http.Request) {
			year, ok := queryYear(w, req)
			if !ok {
				return
			}
			res, err := service.Import(req.Context(), vitidata.TradeQuery{
				Year:    year,
				Product: req.URL.Query().Get("product"),
				Country: req.URL.Query().Get("country"),
			})
			writeResult(w, res, err)
		})
		r.Get("/exportacao", func(w http.ResponseWriter, req *http.Request) {
			year, ok := queryYear(w, req)
			if !ok {
				return
			}
			res, err := service.Export(req.Context(), vitidata.TradeQuery{
				Year:    year,
				Product: req.URL.Query().Get("product"),
				Country: req.URL.Query().Get("country"),
			})
			writeResult(w, res, err)
		})
	})

	initOptionRoutes(router, store)

	refresher := vitidata.NewRefresher(client, store, vitidata.Options{})
	interval := time.Duration(cfg.Refresh.IntervalHours) * time.Hour
	if interval == 0 {
		interval = 24 * time.Hour
	}
	if cfg.Refresh.Enable {
		go refresher.Run(ctx, interval)
	} else if refreshNow {
		go func() {
			err := refresher.RefreshAll(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "refresh fallback database", "err", err)
			}
		}()
	}

	return nil
}

func queryYear(w http.ResponseWriter, req *http.Request) (int, bool) {
	raw := req.URL.Query().Get("year")
	if raw == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   "the 'year' query parameter is required",
		})
		return 0, false
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   "the 'year' query parameter must be an integer",
		})
		return 0, false
	}
	return year, true
}

func writeResult[T any](w http.ResponseWriter, res vitidata.Result[T], err error) {
	var yearErr *vitidata.YearRangeError
	if errors.As(err, &yearErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"error":   yearErr.Error(),
		})
		return
	}
	var optErr *vitibrasil.InvalidOptionError
	if errors.As(err, &optErr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":       false,
			"error":         optErr.Error(),
			"valid_options": optErr.Valid,
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal error",
		})
		return
	}
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
