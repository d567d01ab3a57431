package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mastercactapus/gcline/config"
	"github.com/mastercactapus/gcline/gcode"
	"github.com/mastercactapus/gcline/sender"
	"github.com/spf13/cobra"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

func openPort(cfg *config.Config) (*serial.Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	return p, nil
}

func newSendCommand(a *app) *cobra.Command {
	var f jobFlags
	var port string
	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Send a job to the printer over a serial port",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			p, err := openPort(a.cfg)
			if err != nil {
				return err
			}
			conn := sender.NewConn(p, a.log.Named("sender"))
			defer conn.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = conn.Reset(ctx)
			if err != nil {
				return fmt.Errorf("reset line numbers: %w", err)
			}

			start := time.Now()
			n, err := conn.SendJob(ctx, gcode.NewParser(in), f.multipliers(cmd, a))
			a.log.Info("job finished",
				zap.Int("lines", n),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&port, "port", "p", "", "Serial port (overrides config)")
	return cmd
}
