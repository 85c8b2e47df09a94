package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/negracoref/coref"
	"github.com/revelaction/negracoref/render"
)

// Option structs for subcommands that have flags
type ConvertOptions struct {
	Input        string
	Output       string
	KeepComments bool
	Relations    []string
	Format       string
	Store        string
	Progress     *bool // nil = not set
}

type StatOptions struct {
	Input     string
	Relations []string
}

type InspectOptions struct {
	Input     string
	Store     string
	Relations []string
	NoColor   bool
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level: debug, info, warn or error",
			Value:   "warn",
			EnvVars: []string{"NEGRACOREF_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log format: text or json",
			Value:   "text",
			EnvVars: []string{"NEGRACOREF_LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:      "config",
			Usage:     "YAML file with flag values",
			EnvVars:   []string{"NEGRACOREF_CONFIG"},
			TakesFile: true,
		},
	}
}

func inputFlag() cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     "NEGRA export file, optionally .xz or .gz compressed (- for stdin)",
		EnvVars:   []string{"NEGRACOREF_INPUT"},
		TakesFile: true,
	})
}

func relationFlag() cli.Flag {
	return altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
		Name:    "relation",
		Aliases: []string{"r"},
		Usage:   "relation of the R= comment directives to extract",
		Value:   cli.NewStringSlice(coref.DefaultRelation),
		EnvVars: []string{"NEGRACOREF_RELATION"},
	})
}

func storeFlag(usage string) cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:      "store",
		Aliases:   []string{"s"},
		Usage:     usage,
		EnvVars:   []string{"NEGRACOREF_STORE"},
		TakesFile: true,
	})
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		inputFlag(),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:      "output",
			Aliases:   []string{"o"},
			Usage:     "output file (- for stdout)",
			EnvVars:   []string{"NEGRACOREF_OUTPUT"},
			TakesFile: true,
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "keep-comments",
			Aliases: []string{"k"},
			Usage:   "append the terminal comments to the coreference column",
			EnvVars: []string{"NEGRACOREF_KEEP_COMMENTS"},
		}),
		relationFlag(),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: conll or json",
			Value:   render.FormatConll,
			EnvVars: []string{"NEGRACOREF_FORMAT"},
		}),
		storeFlag("keep the spans in a SQLite (.db) or JSON Lines file"),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "progress",
			Aliases: []string{"p"},
			Usage:   "show a progress bar (default: if stderr is a terminal)",
			EnvVars: []string{"NEGRACOREF_PROGRESS"},
		}),
	}
}

func statFlags() []cli.Flag {
	return []cli.Flag{inputFlag(), relationFlag()}
}

func inspectFlags() []cli.Flag {
	return []cli.Flag{
		inputFlag(),
		storeFlag("read the spans from a SQLite (.db) or JSON Lines file"),
		relationFlag(),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "do not color the spans",
			EnvVars: []string{"NEGRACOREF_NO_COLOR"},
		}),
	}
}

// argOr returns the flag value, or the positional argument n if the flag is
// empty.
func argOr(c *cli.Context, flag string, n int) string {
	if v := c.String(flag); v != "" {
		return v
	}
	return c.Args().Get(n)
}

func parseConvertArgs(c *cli.Context) (ConvertOptions, error) {
	if c.NArg() > 2 {
		return ConvertOptions{}, fmt.Errorf("too many arguments: %v", c.Args().Slice())
	}

	opts := ConvertOptions{
		Input:        argOr(c, "input", 0),
		Output:       argOr(c, "output", 1),
		KeepComments: c.Bool("keep-comments"),
		Relations:    c.StringSlice("relation"),
		Format:       c.String("format"),
		Store:        c.String("store"),
	}

	if c.IsSet("progress") {
		p := c.Bool("progress")
		opts.Progress = &p
	}

	if opts.Output != "" && opts.Output == opts.Input && opts.Input != "-" {
		return opts, errors.New("input and output must be different files")
	}

	return opts, nil
}

func parseStatArgs(c *cli.Context) StatOptions {
	return StatOptions{
		Input:     argOr(c, "input", 0),
		Relations: c.StringSlice("relation"),
	}
}

func parseInspectArgs(c *cli.Context) (InspectOptions, error) {
	opts := InspectOptions{
		Input:     argOr(c, "input", 0),
		Store:     c.String("store"),
		Relations: c.StringSlice("relation"),
		NoColor:   c.Bool("no-color"),
	}

	if opts.Input == "" && opts.Store == "" {
		return opts, errors.New("either an input corpus or a span store (-s or NEGRACOREF_STORE) must be given")
	}

	return opts, nil
}
