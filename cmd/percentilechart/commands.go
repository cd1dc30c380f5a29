package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/config"
	"github.com/uyouii/percentile-chart/dataset"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/percentile"
	"github.com/uyouii/percentile-chart/server"
	"github.com/uyouii/percentile-chart/utils"
	"github.com/uyouii/percentile-chart/viewmodel"
	"github.com/uyouii/percentile-chart/visual"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Dataset file (.json or .csv, - for json on stdin)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "User configuration file (YAML, JSON or TOML)",
			EnvVars: []string{"PERCENTILECHART_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "CSV column holding the samples (default: first column)",
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "CSV column holding the category",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Format string of the CSV sample column, e.g. 0.00 or yyyy-MM-dd",
		},
		&cli.BoolFlag{
			Name:  "dates",
			Usage: "Parse the CSV sample column as dates",
		},
		&cli.StringFlag{
			Name:  "estimator",
			Value: percentile.LinInterpName,
			Usage: "Quantile estimator: linear, empirical, r8, nearest-rank",
		},
	}
}

func builderFor(c *cli.Context) (*viewmodel.Builder, error) {
	estimator, err := percentile.ParseEstimator(c.String("estimator"))
	if err != nil {
		return nil, err
	}
	return viewmodel.NewBuilder(viewmodel.WithEstimator(estimator)), nil
}

func loadInput(c *cli.Context) (visual.UpdateOptions, error) {
	opts := visual.UpdateOptions{Viewport: server.DefaultViewport}

	ds, err := dataset.Read(c.String("input"), dataset.CSVOptions{
		Value:    c.String("value"),
		Category: c.String("category"),
		Format:   c.String("format"),
		DateTime: c.Bool("dates"),
	})
	if err != nil {
		return opts, err
	}
	opts.Dataset = ds

	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return opts, err
		}
		opts.Config = cfg
	}
	return opts, nil
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the chart as SVG",
		Flags: append(inputFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the SVG to file (default: stdout)",
			},
			&cli.Float64Flag{Name: "width", Value: server.DefaultViewport.Width, Usage: "Viewport width"},
			&cli.Float64Flag{Name: "height", Value: server.DefaultViewport.Height, Usage: "Viewport height"},
		),
		Action: func(c *cli.Context) error {
			ctx := c.Context
			opts, err := loadInput(c)
			if err != nil {
				return err
			}
			opts.Viewport = model.Viewport{Width: c.Float64("width"), Height: c.Float64("height")}

			builder, err := builderFor(c)
			if err != nil {
				return err
			}

			w := c.App.Writer
			if path := c.String("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			v := visual.New(builder, capabilities.Default)
			v.Init(ctx, w)
			defer v.Destroy(ctx)

			vm, err := v.Update(ctx, opts)
			if err != nil {
				return err
			}
			if vm.IsDegraded() {
				warnf(c, "%s", vm.Diagnostic())
			}
			return nil
		},
	}
}

func tableCmd() *cli.Command {
	return &cli.Command{
		Name:  "table",
		Usage: "Print the percentile table",
		Flags: append(inputFlags(),
			&cli.IntFlag{Name: "step", Value: 10, Usage: "Print every n-th percentile"},
		),
		Action: func(c *cli.Context) error {
			opts, err := loadInput(c)
			if err != nil {
				return err
			}
			builder, err := builderFor(c)
			if err != nil {
				return err
			}

			vm := builder.Build(c.Context, viewmodel.Input{Dataset: opts.Dataset, Config: opts.Config})
			if vm.IsDegraded() {
				return fmt.Errorf("%s", vm.Diagnostic())
			}

			step := utils.IntMax(c.Int("step"), 1)
			title := vm.Settings.AxisTitle
			if title == "" {
				title = viewmodel.DefaultTooltipValue
			}

			table := tablewriter.NewTable(c.App.Writer)
			table.Header([]string{viewmodel.YAxisLegend, title})
			for i, p := range vm.Points {
				if i%step != 0 && i != len(vm.Points)-1 {
					continue
				}
				table.Append([]string{strconv.Itoa(p.Percentile), vm.Formatter.Format(p.Value)})
			}
			return table.Render()
		},
	}
}

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the user configuration",
		Action: func(c *cli.Context) error {
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(capabilities.Default.JSONSchema())
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve charts over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "Listen address"},
			&cli.StringFlag{Name: "estimator", Value: percentile.LinInterpName, Usage: "Quantile estimator"},
		},
		Action: func(c *cli.Context) error {
			logger := utils.GetLogger(c.Context)
			builder, err := builderFor(c)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              c.String("addr"),
				Handler:           server.New(builder),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", srv.Addr))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
