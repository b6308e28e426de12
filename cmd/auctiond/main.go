package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orbital-network/auction/internal/config"
	restservice "github.com/orbital-network/auction/internal/interface/rest"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

//nolint:all
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
	app.Name = "auctiond"
	app.Usage = "Batch auction daemon for cross-domain swap intents"
	app.Action = runDaemon
	app.Flags = []cli.Flag{&urlFlag}
	app.Commands = append(
		app.Commands,
		&infoCommand,
		&batchCommand,
		&orderbookCommand,
		&bondCommand,
		&tickCommand,
		&tokenCommand,
	)

	if err := app.Run(os.Args); err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

func runDaemon(_ *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid config: %s", err)
	}

	log.SetLevel(log.Level(cfg.LogLevel))
	log.Debugf("loaded config: %s", cfg)

	svcConfig := restservice.Config{
		Port:      cfg.Port,
		JWTSecret: cfg.JWTSecret,
	}

	svc, err := restservice.NewService(svcConfig, cfg)
	if err != nil {
		return err
	}

	log.RegisterExitHandler(svc.Stop)

	log.Info("starting service...")
	if err := svc.Start(); err != nil {
		log.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, os.Interrupt)
	<-sigChan

	log.Info("shutting down service...")
	log.Exit(0)
	return nil
}
