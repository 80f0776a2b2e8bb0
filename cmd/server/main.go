package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/config"
)

func main() {
	cfg, err := config.Load(config.BaseConfigFile)
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	rt, err := NewRuntime(cfg)
	if err != nil {
		log.Fatal("runtime init failed: ", err)
	}

	if err := rt.Start(); err != nil {
		log.Fatal("startup failed: ", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	if err := rt.Shutdown(); err != nil {
		rt.Logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	rt.Logger.Info("service stopped gracefully")
}
