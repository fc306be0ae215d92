package main

import (
	"context"
	"log"
	"os"

	"github.com/HASANPOWER/Spectra-App/internal/buildinfo"
	"github.com/HASANPOWER/Spectra-App/internal/client/cli"
	"github.com/HASANPOWER/Spectra-App/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
