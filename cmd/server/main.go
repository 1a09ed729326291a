package main

import (
	"flag"
	"net/http"
	"vitibrasil-backend/lib/configutil"
	"vitibrasil-backend/lib/serviceutil"
	"vitibrasil-backend/lib/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

type Config struct {
	Port      int              `json:"port"`
	Telemetry telemetry.Config `json:"telemetry"`
	Auth      AuthConfig       `json:"auth"`
	Vitidata  VitidataConfig   `json:"vitidata"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	refreshNow := flag.Bool("refresh", false, "Refresh the fallback database immediately on run.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	InitTelemetry(ctx, *verbose, cfg.Telemetry)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	authService, err := InitAuth(router, cfg.Auth)
	if err != nil {
		serviceutil.Fatal("init auth", err)
	}
	err = InitVitidata(ctx, router, authService, cfg.Vitidata, *refreshNow)
	if err != nil {
		serviceutil.Fatal("init vitidata", err)
	}

	port := cfg.Port
	if port == 0 {
		port = 8000
	}
	go serviceutil.StartHttpServer(port, router)
	<-ctx.Done()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
