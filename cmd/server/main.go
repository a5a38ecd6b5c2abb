package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"rogue-server/internal/engine"
	"rogue-server/internal/server"
	"rogue-server/internal/storage"
	"rogue-server/internal/version"
	"rogue-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var configPath string
	var seed uint64
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.Uint64Var(&seed, "seed", 0, "Master world seed (0 for random)")
	flag.Parse()

	logger.Log.Info("Starting rogue server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using master seed: %d", cfg.Seed)
	}

	if addr := os.Getenv("RS_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	saver := storage.NewSaveService(cfg.SavePath)
	srv := server.New(cfg, saver)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	logger.Log.Info("Done.")
}
