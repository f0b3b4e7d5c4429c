package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/cloudvault/internal/client/cli"
	"github.com/dmitrijs2005/cloudvault/internal/client/config"
	"github.com/dmitrijs2005/cloudvault/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	// structured logs go to a file so they do not interleave with the REPL
	logOut := io.Discard
	if f, err := os.OpenFile("cloudvault-client.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(logOut, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
