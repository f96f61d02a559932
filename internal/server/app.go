package server

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/FilmonaM/interstellar-command/internal/game"
	"github.com/FilmonaM/interstellar-command/internal/narrative"
	"github.com/FilmonaM/interstellar-command/internal/storage"
)

// ResolveMap picks the galaxy: a custom map file when configured and present,
// otherwise the named built-in.
func ResolveMap(cfg Config) game.GalaxyMap {
	if m, ok, err := game.LoadMapFile(cfg.MapFile); err != nil {
		log.Printf("map file: %v (using built-in)", err)
	} else if ok {
		return m
	}
	if strings.EqualFold(cfg.MapName, "strategic") {
		return game.StrategicMap()
	}
	return game.TacticalMap()
}

// StartApp wires storage, the chronicle, and the narrative generator into a
// hub and serves it. An existing save resumes; otherwise a fresh campaign
// starts.
func StartApp(cfg Config) {
	store, err := storage.NewJSONStore(cfg.SaveDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	g, err := store.LoadGame()
	switch {
	case err == nil:
		log.Printf("resuming campaign on %s at turn %d", g.MapName, g.TurnNumber)
	case errors.Is(err, storage.ErrNoSave):
		g = game.NewGame(ResolveMap(cfg), cfg.PlayerOne, cfg.PlayerTwo)
		log.Printf("new campaign on %s: %s vs %s", g.MapName, cfg.PlayerOne, cfg.PlayerTwo)
	default:
		log.Fatalf("load save: %v", err)
	}

	chron, err := storage.OpenChronicle(cfg.ChroniclePath)
	if err != nil {
		log.Printf("chronicle disabled: %v", err)
		chron = nil
	}
	campaignID := ""
	if chron != nil {
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

	hub := NewHub(g, store, chron, campaignID, events)
	go hub.RunCycles(context.Background(), cfg.CycleInterval)

	log.Printf("starting server on %s (cycle every %s)", cfg.Addr, cfg.CycleInterval)
	startServer(hub, cfg.Addr)
}
