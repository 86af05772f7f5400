/*
Copyright 2023 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sigs.k8s.io/runplot/cmd/cli"
	"sigs.k8s.io/runplot/cmd/view"
)

// RunPlotOptions provides the information required to plot a run file
type RunPlotOptions struct {
	args  []string
	flags cli.RunPlotFlags
	cli.IOStreams
}

// NewRunPlotOptions provides an instance of RunPlotOptions
func NewRunPlotOptions(streams cli.IOStreams) *RunPlotOptions {
	return &RunPlotOptions{
		IOStreams: streams,
	}
}

type RootRunPlotCmd struct {
	*cobra.Command
	options *RunPlotOptions
}

func addFlags(cmd *cobra.Command, options *RunPlotOptions) {
	cmd.Flags().StringVarP(&options.flags.XAxis, "xaxis", "x", "", "column to plot on the x axis (overrides the remembered choice)")
	cmd.Flags().StringVarP(&options.flags.YAxis, "yaxis", "y", "", "column to plot on the y axis (overrides the remembered choice)")
	cmd.Flags().BoolVarP(&options.flags.List, "list", "l", options.flags.List, "if true, lists out the plottable columns.")
	cmd.Flags().StringVarP(&options.flags.Output, "output", "o", "", "if specified, dumps the loaded runs in this format (json or yaml) instead of plotting")
	cmd.Flags().StringVar(&options.flags.StatePath, "state", "", "where to persist axis choices, defaults to a per-user location")
	cmd.Flags().StringArrayVar(&options.flags.LogScale, "log-scale", options.flags.LogScale, "columns to plot on a log10 axis, may be repeated")
	cmd.Flags().IntVar(&options.flags.Height, "height", 0, "cap the plot area at this many terminal rows, 0 fills the terminal")
}

// NewCmdRunPlot provides a cobra command wrapping RunPlotOptions
func NewCmdRunPlot(streams cli.IOStreams) *RootRunPlotCmd {
	o := NewRunPlotOptions(streams)
	cmd := &cobra.Command{
		Use: "runplot [flags] FILE",
		Example: `
runplot runs.csv                          # for interactive mode
runplot runs.csv -l                       # to list the plottable columns
runplot runs.csv -x dropout -y valid_ppl  # to start with axes already chosen
runplot runs.csv -ojson                   # to dump the loaded runs in json
`,
		SilenceUsage: true,

		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			plotCmd := view.PlotCommand{
				Streams: o.IOStreams,
				Flags:   o.flags,
				Path:    o.args[0],
			}
			if err := plotCmd.Run(context.Background()); err != nil {
				return err
			}
			return nil
		},
	}
	runplot := &RootRunPlotCmd{Command: cmd, options: o}

	addFlags(cmd, o)

	return runplot
}

// Complete sets all information required to plot the run file
func (o *RunPlotOptions) Complete(cmd *cobra.Command, args []string) error {
	o.args = args
	return nil
}

// Validate ensures that all required arguments and flag values are provided
func (o *RunPlotOptions) Validate() error {
	if len(o.args) != 1 {
		return fmt.Errorf("expected exactly one run file to plot, got %d arguments", len(o.args))
	}
	switch o.flags.Output {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", o.flags.Output)
	}
	return nil
}
