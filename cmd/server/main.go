package main

import (
	"fmt"

	"github.com/andrinek/notesync/internal/adapter"
	"github.com/andrinek/notesync/internal/config"
	handlerHTTP "github.com/andrinek/notesync/internal/handler/http"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/server"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("notesync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	// change signals are best effort: without a broker the API still works,
	// clients just poll instead of reacting live
	var publisher service.ChangePublisher
	if cfg.Broker.URL != "" {
		natsPublisher, pubErr := adapter.NewChangePublisher(cfg.Broker.URL)
		if pubErr != nil {
			log.Warn().Err(pubErr).Msg("broker unreachable, change signals disabled")
		} else {
			publisher = natsPublisher
			defer natsPublisher.Close()
		}
	}

	services := service.NewServices(storages, publisher, log)
	handler := handlerHTTP.NewHandler(services, cfg.Auth, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
