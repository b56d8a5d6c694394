package main

import (
	"log/slog"
	"os"

	"github.com/alb0rt/send-trend/cmd/sendtrend"
	"github.com/alb0rt/send-trend/logging"
)

func main() {
	slog.SetDefault(slog.New(
		logging.ContextHandler{Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})},
	))

	sendtrend.Execute()
}
