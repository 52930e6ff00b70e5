// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// initCommand writes a starter config and data directory.
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create config.toml and an empty data directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite empty data files even if they exist",
			},
		},
		Action: r.Init,
	}
}

// buildCommand renders the static site.
func buildCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Render the site into the output directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: site.output_dir)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the build summary as JSON",
			},
		},
		Action: r.Build,
	}
}

// serveCommand runs the preview server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Build the site and serve it locally",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default: server.port)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Rebuild when files in the data directory change",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the site in a browser",
			},
		},
		Action: r.Serve,
	}
}

// coversCommand generates cover thumbnails.
func coversCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "covers",
		Usage: "Generate cover thumbnails for every album",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Thumbnail directory (default: covers.thumb_dir)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers (default: covers.workers)",
			},
		},
		Action: r.Covers,
	}
}

// albumsCommand groups catalog queries.
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"a"},
		Usage:   "Query the album catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List albums, most recent first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"f", "filter"},
						Usage:   "Only albums by this artist slug",
						Value:   "all",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AlbumsList,
			},
			{
				Name:  "show",
				Usage: "Show one album",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "slug"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AlbumsShow,
			},
			{
				Name:  "search",
				Usage: "Fuzzy search albums by name and artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
				Action: r.AlbumsSearch,
			},
			{
				Name:  "export",
				Usage: "Export the catalog as csv, markdown, text or json",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "csv, markdown, text or json",
						Value: "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: catalog.<ext>)",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Print instead of writing a file",
					},
				},
				Action: r.AlbumsExport,
			},
		},
	}
}

// importCommand groups data maintenance importers. Each one rewrites files in the data directory.
func importCommand(r *Runner) *cli.Command {
	dryRun := func() cli.Flag {
		return &cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Report changes without writing files",
		}
	}
	return &cli.Command{
		Name:  "import",
		Usage: "Merge external data into the catalog JSON",
		Commands: []*cli.Command{
			{
				Name:  "press",
				Usage: "Merge featured quotes and press from a CSV sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags:  []cli.Flag{dryRun()},
				Action: r.ImportPress,
			},
			{
				Name:  "overrides",
				Usage: "Apply hand-maintained corrections from a TOML file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags:  []cli.Flag{dryRun()},
				Action: r.ImportOverrides,
			},
			{
				Name:  "covers",
				Usage: "Point albums at <slug>.jpg or <slug>.png in the covers directory",
				Flags: []cli.Flag{
					dryRun(),
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Covers directory (default: covers.dir)",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Site path written to coverImage (default: the covers directory)",
					},
				},
				Action: r.ImportCovers,
			},
			{
				Name:  "wordpress",
				Usage: "Build the timeline and missing artists from a WordPress export",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags:  []cli.Flag{dryRun()},
				Action: r.ImportWordPress,
			},
			{
				Name:   "embeds",
				Usage:  "Rewrite Bandcamp embeds as the compact player",
				Flags:  []cli.Flag{dryRun()},
				Action: r.ImportEmbeds,
			},
		},
	}
}

// dbCommand groups catalog database operations.
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Catalog database commands",
		Commands: []*cli.Command{
			{
				Name:   "setup",
				Usage:  "Initialize database and run migrations",
				Action: r.DBSetup,
			},
			{
				Name:   "sync",
				Usage:  "Load the data directory into the database",
				Action: r.DBSync,
			},
			{
				Name:  "dump",
				Usage: "Write the database back out as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for the JSON files (default: site.data_dir)",
					},
				},
				Action: r.DBDump,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.DBRollback,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing the catalog.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse the catalog in the terminal",
		Action:  r.TUI,
	}
}
