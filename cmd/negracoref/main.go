package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/negracoref/internal/logging"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "negracoref: %v\n", err)
}

func newApp(ui UI) *cli.App {
	// altsrc sets the values on the same flag instances the command parses
	cf, sf, inf := convertFlags(), statFlags(), inspectFlags()

	return &cli.App{
		Name:            "negracoref",
		Usage:           "convert NEGRA export files with coreference comments to CoNLL-X",
		Writer:          ui.Out,
		ErrWriter:       ui.Err,
		DefaultCommand:  "convert",
		HideHelpCommand: true,

		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Before: func(c *cli.Context) error {
			return setupLogging(c, ui)
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "annotate every token with the spans of its coreference antecedents",
				ArgsUsage: "[INPUT [OUTPUT]]",
				Flags:     cf,
				Before:    altsrc.InitInputSourceWithContext(cf, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action: func(c *cli.Context) error {
					opts, err := parseConvertArgs(c)
					if err != nil {
						return err
					}
					return convertCommand(c.Context, opts, ui)
				},
			},
			{
				Name:      "stat",
				Usage:     "print corpus and coreference counts",
				ArgsUsage: "[INPUT]",
				Flags:     sf,
				Before:    altsrc.InitInputSourceWithContext(sf, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action: func(c *cli.Context) error {
					return statCommand(c.Context, parseStatArgs(c), ui)
				},
			},
			{
				Name:      "inspect",
				Usage:     "browse the spans of a corpus or a span store interactively",
				ArgsUsage: "[INPUT]",
				Flags:     inf,
				Before:    altsrc.InitInputSourceWithContext(inf, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action: func(c *cli.Context) error {
					opts, err := parseInspectArgs(c)
					if err != nil {
						return err
					}
					return inspectCommand(c.Context, opts, ui)
				},
			},
			{
				Name:  "bash",
				Usage: "print the bash completion script (source <(negracoref bash))",
				Action: func(c *cli.Context) error {
					return bashCommand(ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}

func setupLogging(c *cli.Context, ui UI) error {
	level, err := logging.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.String("log-format"))
	if err != nil {
		return err
	}
	logging.InitLogger(ui.Err, level, format)
	return nil
}
