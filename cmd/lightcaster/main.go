package main

import (
	"LightCaster/internal/config"
	"LightCaster/internal/engine"
	"LightCaster/internal/logger"
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "lightcaster.json", "path to the JSON config file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *writeConfig {
		if err := cfg.Save(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("config written to", *configPath)
		return
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := engine.New(cfg).Run(); err != nil {
		logger.Log.Error("LightCaster stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
