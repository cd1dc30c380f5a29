// Command percentilechart renders percentile distribution charts from a
// dataset file, prints the percentile table or serves charts over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/uyouii/percentile-chart/utils"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "dev"

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "percentilechart",
		Usage:     "Percentile distribution charts from a column of values",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				utils.SetLogger(logger)
			}
			return nil
		},
		Commands: []*cli.Command{
			renderCmd(),
			tableCmd(),
			schemaCmd(),
			serveCmd(),
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func warnf(c *cli.Context, format string, args ...any) {
	fmt.Fprintln(c.App.ErrWriter, color.YellowString(format, args...))
}
