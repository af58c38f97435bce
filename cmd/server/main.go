package main

import (
	"context"
	"log"
	"os"

	// so the configured display time zone resolves in minimal images
	_ "time/tzdata"

	"gestoria/internal/buildinfo"
	"gestoria/internal/server"
	"gestoria/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
