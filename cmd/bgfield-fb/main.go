//go:build linux

// Command bgfield-fb draws the floating circles straight to the Linux
// framebuffer, for kiosks and boot screens without a window system.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	fb "github.com/gonutz/framebuffer"
	"github.com/spf13/pflag"

	"github.com/iburimskiy/bgfield/internal/app"
	"github.com/iburimskiy/bgfield/internal/host/fbhost"
)

const device = "/dev/fb0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bgfield-fb: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	setup, err := app.Prepare("bgfield-fb", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	defer setup.Close()

	dev, err := fb.Open(device)
	if err != nil {
		return fmt.Errorf("open %s: %w", device, err)
	}
	defer dev.Close()
	setup.Log.Info("framebuffer open", "device", device, "bounds", dev.Bounds().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := fbhost.New(dev, setup.Config, setup.Log)
	h.Start(setup.Reduced, setup.Options)
	return h.Run(ctx)
}
