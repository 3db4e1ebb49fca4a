package main

import (
	"context"

	"github.com/snackswap/snackswap/internal/client/cli"
	"github.com/snackswap/snackswap/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
