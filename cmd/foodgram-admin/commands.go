package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		migrateCommand(r),
		loadTagsCommand(r),
		loadIngredientsCommand(r),
		eventsCommand(r),
	}
}

// migrateCommand управляет схемой базы данных.
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back database migrations",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: r.MigrateUp,
			},
			{
				Name:  "down",
				Usage: "Roll back the latest migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to roll back",
						Value: 1,
					},
				},
				Action: r.MigrateDown,
			},
			{
				Name:   "version",
				Usage:  "Print the current schema version",
				Action: r.MigrateVersion,
			},
		},
	}
}

func loadTagsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "load-tags",
		Usage: "Import tags from a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "JSON array of {name, color, slug}",
				Required: true,
			},
		},
		Action: r.LoadTags,
	}
}

func loadIngredientsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "load-ingredients",
		Usage: "Import ingredients from a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "JSON array of {name, measurement_unit}",
				Required: true,
			},
		},
		Action: r.LoadIngredients,
	}
}

// eventsCommand читает события рецептов из RabbitMQ.
func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Inspect recipe events",
		Commands: []*cli.Command{
			{
				Name:  "tail",
				Usage: "Print recipe events from a queue until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "queue",
						Usage: "Queue to read",
						Value: "recipes.published",
					},
				},
				Action: r.EventsTail,
			},
		},
	}
}
