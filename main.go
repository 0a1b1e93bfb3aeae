package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/iburimskiy/bgfield/internal/app"
	"github.com/iburimskiy/bgfield/internal/host/ebitenhost"
)

func main() {
	setup, err := app.Prepare("bgfield", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "bgfield: %v\n", err)
		os.Exit(2)
	}
	defer setup.Close()

	h := ebitenhost.New(setup.Config, setup.Reduced, setup.Options, setup.Log)
	h.Debug = setup.Flags.Debug

	if err := ebitenhost.Run(h, setup.Config); err != nil && !errors.Is(err, ebiten.Termination) {
		setup.Log.Error("window closed with error", "err", err)
		os.Exit(1)
	}
}
