package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"tactics-core/internal/catalog"
	"tactics-core/internal/domain"
	"tactics-core/internal/engine"
	"tactics-core/internal/version"
	"tactics-core/pkg/logger"
	"tactics-core/pkg/skirmish"

	"github.com/sirupsen/logrus"
)

// generatedPrefix marks a level source generated from a seed instead of
// read from a file.
const generatedPrefix = "skirmish:"

func init() {
	logger.Init()
}

func main() {
	var (
		catalogPath = flag.String("catalog", envOr("TACTICS_CATALOG", ""), "catalog YAML file (required)")
		levelPath   = flag.String("level", envOr("TACTICS_LEVEL", ""), "level YAML file; empty generates a skirmish map")
		seed        = flag.Int64("seed", envInt64("TACTICS_SEED", 0), "match seed (0 for random)")
		actions     = flag.Int("actions", int(envInt64("TACTICS_ACTIONS", engine.DefaultMaxActions)), "actions per turn")
		scriptPath  = flag.String("script", "", "YAML list of commands to execute")
	)
	flag.Parse()

	logger.Log.Info("Starting tactics core...")
	logger.Log.Info(version.String())

	if *catalogPath == "" {
		logger.Log.Fatal("-catalog is required")
	}
	cat, err := catalog.LoadCatalog(*catalogPath)
	if err != nil {
		logger.Log.Fatal("Failed to load catalog: ", err)
	}

	cfg := engine.NewConfig()
	if *seed != 0 {
		cfg.Seed = *seed
		logger.Log.Infof("🎲 Using explicit seed: %d", cfg.Seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %d", cfg.Seed)
	}
	cfg.MaxActions = *actions

	source := *levelPath
	if source == "" {
		source = generatedPrefix + strconv.FormatInt(cfg.Seed, 10)
	}
	g, err := buildGrid(source, cat)
	if err != nil {
		logger.Log.Fatal("Failed to build level: ", err)
	}
	m := engine.NewMatch(g, cfg)

	if *scriptPath != "" {
		if err := runScript(m, *scriptPath); err != nil {
			logger.Log.Fatal("Script failed: ", err)
		}
	}

	summarize(m)
	logger.Log.Info("Done.")
}

// buildGrid loads the level file, or generates a skirmish map for
// "skirmish:<seed>" sources.
func buildGrid(source string, cat *domain.Catalog) (*domain.Grid, error) {
	var lvl *catalog.Level
	if seedText, ok := strings.CutPrefix(source, generatedPrefix); ok {
		seed, err := strconv.ParseInt(seedText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad generated level %q: %w", source, err)
		}
		defaultTerrain := "default"
		if _, ok := cat.Terrain[defaultTerrain]; !ok {
			return nil, fmt.Errorf("generated levels need a %q terrain in the catalog", defaultTerrain)
		}
		if lvl, err = skirmish.Generate(rand.New(rand.NewSource(seed)), skirmish.DefaultOptions(cat, defaultTerrain)); err != nil {
			return nil, err
		}
	} else {
		var err error
		if lvl, err = catalog.LoadLevel(source); err != nil {
			return nil, err
		}
	}
	return catalog.BuildGrid(lvl, cat)
}

// summarize logs, for every unit, how far it can move and what it threatens.
func summarize(m *engine.Match) {
	current := m.Turns.CurrentFaction()
	for pos, unit := range m.Grid.Units() {
		reach := reachOf(m.Grid, unit, pos)
		logger.Log.WithFields(logrus.Fields{
			"faction":      unit.Faction,
			"kind":         unit.Kind.Name,
			"pos":          pos,
			"hp":           unit.Health,
			"range":        unit.Kind.Attack.Range,
			"destinations": reach.destinations,
			"threatened":   len(reach.targets),
			"to_move":      unit.Faction == current,
		}).Info("Unit")
	}
	if w, ok := m.Winner(); ok {
		logger.Log.WithField("faction", w).Info("🏆 Match is over")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"turn":         m.Turn,
		"faction":      current,
		"actions_left": m.Turns.ActionsLeft(),
	}).Info("Awaiting orders")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Log.Warnf("Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}
