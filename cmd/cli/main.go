package main

import (
	"context"
	"log"
	"os"

	"github.com/cloudchest/cloudchest-cli/internal/buildinfo"
	"github.com/cloudchest/cloudchest-cli/internal/client/cli"
	"github.com/cloudchest/cloudchest-cli/internal/client/config"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logging.NewDefault())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
