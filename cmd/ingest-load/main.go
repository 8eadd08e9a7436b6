// Command ingest-load publishes one JSON batch file to the ingest queue:
//
//	ingest-load -f orders.json [-q amqp://...]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/wbdash/wbdash/internal/flagx"
	"github.com/wbdash/wbdash/internal/server"
	"github.com/wbdash/wbdash/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	var path string
	fs := flag.NewFlagSet("ingest-load", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "f", "", "batch file")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-f"})); err != nil || path == "" {
		log.Fatal("usage: ingest-load -f batch.json")
	}

	b, err := server.PublishFile(context.Background(), cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, path)
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	fmt.Printf("published %s batch %s for lk %d\n", b.Type, b.ID, b.LkID)
}
