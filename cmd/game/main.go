package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/wrenware/staroids/internal/audio"
	"github.com/wrenware/staroids/internal/game"
)

func main() {
	seed := flag.Int64("seed", 0, "world seed (0 seeds from the clock)")
	mute := flag.Bool("mute", false, "disable audio output")
	volume := flag.Float64("volume", 1.0, "master volume, 0 to 1")
	flag.Parse()

	sounds := audio.NewSoundManager()
	if !*mute {
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio unavailable: %v", err)
		}
		sounds.SetMasterVolume(*volume)
	}
	defer sounds.Cleanup()

	ebiten.SetWindowTitle("Staroids")
	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	if err := ebiten.RunGame(game.New(*seed, sounds)); err != nil {
		log.Fatal(err)
	}
}
