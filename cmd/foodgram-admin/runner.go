package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/magabrotheeeer/foodgram/internal/config"
)

// Runner хранит общие зависимости команд.
type Runner struct {
	logger *log.Logger
	output io.Writer
	load   func(path string) (*config.Config, error)
}

// RunnerOpts параметры NewRunner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
	Load   func(path string) (*config.Config, error)
}

// NewRunner создаёт Runner, подставляя значения по умолчанию.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Load == nil {
		opts.Load = config.Load
	}
	return &Runner{logger: opts.Logger, output: opts.Output, load: opts.Load}
}

// slogger возвращает логгер для внутренних пакетов, которые пишут через log/slog.
func (r *Runner) slogger() *slog.Logger {
	return slog.New(r.logger)
}

func (r *Runner) loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := r.load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}

// readJSON читает из файла path JSON-массив записей.
func readJSON[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []T
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}
