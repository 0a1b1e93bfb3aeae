// Command bgfield-term draws the floating circles as terminal cell colors.
//
// Usage:
//
//	bgfield-term [--config file.yaml] [--seed N] [--reduce-motion] [--log-file path]
//
// Esc, q or Ctrl-C quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/iburimskiy/bgfield/internal/app"
	"github.com/iburimskiy/bgfield/internal/host/termhost"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bgfield-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// logs would tear the screen, so they go nowhere unless --log-file is set
	setup, err := app.Prepare("bgfield-term", os.Args[1:], io.Discard)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	defer setup.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := termhost.New(screen, setup.Config, setup.Log)
	h.Start(setup.Reduced, setup.Options)
	return h.Run(ctx)
}
