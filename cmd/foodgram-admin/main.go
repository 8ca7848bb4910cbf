// Command foodgram-admin выполняет служебные операции сервиса рецептов: миграции схемы,
// загрузка справочников тегов и ингредиентов и просмотр событий рецептов.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := &cli.Command{
		Name:  "foodgram-admin",
		Usage: "Administrative tasks for the foodgram backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Sources: cli.EnvVars("CONFIG_PATH"),
				Value:   "config/local.yaml",
			},
		},
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}
