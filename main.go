package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/FilmonaM/interstellar-command/internal/cli"
	"github.com/FilmonaM/interstellar-command/internal/game"
	"github.com/FilmonaM/interstellar-command/internal/narrative"
	"github.com/FilmonaM/interstellar-command/internal/server"
	"github.com/FilmonaM/interstellar-command/internal/storage"
)

func main() {
	serve := flag.Bool("serve", false, "run the networked websocket server instead of local play")
	newGame := flag.Bool("new", false, "start a new campaign, replacing any existing save")
	mapName := flag.String("map", "", "built-in map: tactical or strategic (overrides IC_MAP)")
	mapFile := flag.String("map-file", "", "path to a custom galaxy map YAML (overrides IC_MAP_FILE)")
	addr := flag.String("addr", "", "listen address for -serve (overrides IC_ADDR)")
	flag.Parse()

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *mapName != "" {
		cfg.MapName = *mapName
	}
	if *mapFile != "" {
		cfg.MapFile = *mapFile
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if *serve {
		server.StartApp(cfg)
		return
	}
	runLocal(cfg, *newGame)
}

// runLocal plays the hotseat game in this terminal.
func runLocal(cfg server.Config, fresh bool) {
	store, err := storage.NewJSONStore(cfg.SaveDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var g *game.GameState
	if fresh || !store.SaveExists() {
		if err := store.DeleteSave(); err != nil {
			log.Fatalf("clear save: %v", err)
		}
		g = newCampaign(cfg)
	} else {
		g, err = store.LoadGame()
		if err != nil {
			log.Fatalf("load save: %v", err)
		}
		fmt.Printf("Resuming campaign on %s at turn %d.\n", g.MapName, g.TurnNumber)
	}

	chron, err := storage.OpenChronicle(cfg.ChroniclePath)
	if err != nil {
		log.Printf("chronicle disabled: %v", err)
		chron = nil
	}
	campaignID := ""
	if chron != nil {
		defer chron.Close()
		campaignID, err = chron.BeginCampaign(context.Background(), g)
		if err != nil {
			log.Printf("chronicle disabled: %v", err)
			chron = nil
		}
	}

	events := narrative.New(
		narrative.WithEndpoint(cfg.OllamaURL),
		narrative.WithModel(cfg.OllamaModel),
		narrative.Disabled(cfg.DisableAI),
	)

	loop := cli.New(g, store, chron, campaignID, events)
	if err := loop.Run(context.Background()); err != nil && !errors.Is(err, io.EOF) {
		log.Fatalf("game loop: %v", err)
	}
}

// newCampaign prompts for commander names and optional passwords, then
// places both fleets on the configured map.
func newCampaign(cfg server.Config) *game.GameState {
	in := bufio.NewReader(os.Stdin)
	prompt := func(label, fallback string) string {
		fmt.Printf("%s [%s]: ", label, fallback)
		line, err := in.ReadString('\n')
		if err != nil {
			return fallback
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}
		return line
	}

	fmt.Println("=== NEW CAMPAIGN ===")
	name1 := prompt("Player 1 name", cfg.PlayerOne)
	pass1 := prompt("Player 1 password (empty for open access)", "")
	name2 := prompt("Player 2 name", cfg.PlayerTwo)
	pass2 := prompt("Player 2 password (empty for open access)", "")

	m := server.ResolveMap(cfg)
	g := game.NewGame(m, name1, name2)
	if pass1 != "" {
		g.Players[0].SetPassword(pass1)
	}
	if pass2 != "" {
		g.Players[1].SetPassword(pass2)
	}

	fmt.Printf("%s starts at %s.\n", name1, g.Sectors[m.Starts[0]].Name)
	fmt.Printf("%s starts at %s.\n", name2, g.Sectors[m.Starts[1]].Name)
	return g
}
