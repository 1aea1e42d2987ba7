// Command cgle-term runs the simulator in a terminal. The grid takes the
// terminal's size at startup.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"cgle/internal/app"
	"cgle/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Substeps = 20
	cfg.Bind(flag.CommandLine)
	sound := flag.Bool("sound", false, "play tones on clicks and pause")
	flag.Parse()

	var chime *term.Chime
	if *sound {
		var err error
		if chime, err = term.NewChime(); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	size := term.GridSize(screen.Size())
	cfg.Width, cfg.Height = size.W, size.H

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, err := app.NewSession(ctx, cfg)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	host := term.NewHost(screen, session.Driver, session.Frame, cfg.TPS, chime)
	runErr := host.Run(ctx)
	screen.Fini()
	session.Close()
	if runErr != nil && runErr != context.Canceled {
		log.Fatal(runErr)
	}
}
