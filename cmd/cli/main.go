package main

import (
	"postboard/internal/client/cli"
	"postboard/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Root()
}
