package main

import (
	"fmt"
	"os"

	"timegate/internal/api"
	"timegate/internal/cli"
	"timegate/internal/config"
	"timegate/internal/services"
	"timegate/internal/validation"
)

func main() {
	loader := config.NewLoader()
	cfg, err := loader.Load(os.Getenv("TG_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	container := services.NewServiceContainer(repo, cfg)
	facade := api.New(container, repo, cfg, validation.DefaultPermissions())

	root := cli.NewRootCommand(facade, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
