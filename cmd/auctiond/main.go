package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mintara/auction-house/internal/config"
	"github.com/mintara/auction-house/internal/config/di"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("auctiond")
	container = di.NewContainer()
	defer container.Delete()

	container.GetElastic().InstallMappings()
	container.GetActivityIndexer().Subscribe()

	go health()
	go persistLoop()

	zap.L().With(
		zap.String("apiPort", config.Get().ApiPort),
		zap.String("healthPort", config.Get().HealthPort),
	).Info("Auction house started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApiServer().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start api server")
	}
}

func persistLoop() {
	for {
		time.Sleep(time.Second)
		container.GetElastic().Persist()
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
