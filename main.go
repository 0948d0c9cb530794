package main

import (
	"fmt"
	"os"

	"checkers/internal/config"
	"checkers/internal/console"
	"checkers/internal/logx"
	"checkers/internal/store"
	"checkers/internal/table"
)

func main() {
	cfg := config.Load()
	logx.Configure(cfg.LogLevel, cfg.LogPretty)

	tb := table.New(store.NewMemoryStore(cfg.HistoryLimit), nil)
	if err := console.Run(os.Stdin, os.Stdout, tb); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
