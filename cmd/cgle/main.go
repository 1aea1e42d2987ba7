//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"cgle/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	session, err := app.NewSession(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	game := app.New(session, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(fmt.Sprintf("cgle (%s)", session.Driver.Device().Name()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
