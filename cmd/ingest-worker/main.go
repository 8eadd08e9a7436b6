package main

import (
	"context"
	"log"

	"github.com/wbdash/wbdash/internal/server"
	"github.com/wbdash/wbdash/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	if err := app.RunIngestWorker(ctx); err != nil {
		log.Printf("%v", err)
	}
}
