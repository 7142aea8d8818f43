package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"airmap/api"
	"airmap/app"
	"airmap/config"
	"airmap/logger"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	apiBase := flag.String("api", "", "Backend API base URL (default: $AIRMAP_API_BASE or http://localhost:8000/api)")
	mapShapePath := flag.String("map", "", "Basemap polygon shapefile, e.g. mapdata/ne_10m_admin_1_states_provinces.shp")
	logFile := flag.String("log", "", "Log file (default: $LOG_FILE, logging is off when empty)")
	envFile := flag.String("env", "", "Env file to load before reading the environment (default: .env if present)")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("airmap - Terminal map of airports and flight routes")
		fmt.Println("\nUsage: airmap [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the environment
	if *apiBase != "" {
		cfg.APIBase = *apiBase
	}
	if *mapShapePath != "" {
		cfg.MapShapefile = *mapShapePath
	}
	if *logFile != "" {
		cfg.LoggingConfig.File = *logFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only ever go to a file
	lg, closer, err := logger.Open(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
		File:   cfg.LoggingConfig.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		lg = logger.Discard()
	} else {
		defer closer.Close()
	}
	lg.Info("airmap starting", "api", cfg.APIBase, "basemap", cfg.MapShapefile)

	client := api.New(cfg.APIBase, cfg.RequestTimeout, lg)
	p := tea.NewProgram(app.New(cfg, client, lg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		lg.Error(err, "program exited")
		log.Fatalf("Alas, there's been an error: %v", err)
	}
}
