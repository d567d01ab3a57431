package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/mastercactapus/gcline/gcode"
	"github.com/mastercactapus/gcline/job"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// jobFlags are shared by commands that render a job.
type jobFlags struct {
	speed, extrusion, travel float64
	start                    int64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "Feed rate multiplier for extrusion moves")
	cmd.Flags().Float64Var(&f.extrusion, "extrusion", 0, "Extrusion multiplier")
	cmd.Flags().Float64Var(&f.travel, "travel", 0, "Feed rate multiplier for travel moves")
}

// multipliers returns the configured multipliers with any flags given on the
// command line taking precedence.
func (f *jobFlags) multipliers(cmd *cobra.Command, a *app) gcode.Multipliers {
	m := a.cfg.Multipliers.Gcode()
	if cmd.Flags().Changed("speed") {
		m.Speed = f.speed
	}
	if cmd.Flags().Changed("extrusion") {
		m.Extrusion = f.extrusion
	}
	if cmd.Flags().Changed("travel") {
		m.Travel = f.travel
	}
	return m
}

func (f *jobFlags) startLine(cmd *cobra.Command, a *app) int64 {
	if cmd.Flags().Changed("start") {
		return f.start
	}
	return a.cfg.StartLine
}

// openInput opens the named file, or stdin for no name or "-".
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}

func newRenderCommand(a *app) *cobra.Command {
	var f jobFlags
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write numbered, checksummed lines to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := f.startLine(cmd, a)
			if start < 0 {
				return errors.New("start: must not be negative")
			}
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			mul := f.multipliers(cmd, a)
			a.log.Debug("rendering", zap.Any("multipliers", mul), zap.Int64("start", start))

			b := job.NewBuffer(gcode.NewParser(in), mul, start)
			_, err = io.Copy(cmd.OutOrStdout(), b)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().Int64Var(&f.start, "start", 0, "First line number")
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize the moves and commands of a job as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			s, err := job.Collect(gcode.NewParser(in))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
}
