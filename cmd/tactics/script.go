package main

import (
	"bytes"
	"fmt"
	"os"

	"tactics-core/internal/domain"
	"tactics-core/internal/engine"
	"tactics-core/internal/systems"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// scriptStep is one command of a -script file.
type scriptStep struct {
	Action string          `yaml:"action"`
	From   domain.Position `yaml:"from"`
	To     domain.Position `yaml:"to"`
}

func (s scriptStep) command() (engine.Command, error) {
	action := domain.ParseAction(s.Action)
	if action == domain.ActionUnknown {
		return engine.Command{}, fmt.Errorf("unknown action %q", s.Action)
	}
	return engine.Command{Action: action, From: s.From, To: s.To}, nil
}

func parseScript(data []byte) ([]engine.Command, error) {
	var steps []scriptStep
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&steps); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	cmds := make([]engine.Command, 0, len(steps))
	for i, s := range steps {
		cmd, err := s.command()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// runScript executes every command in order. Refused commands are logged and
// skipped; malformed ones stop the script.
func runScript(m *engine.Match, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cmds, err := parseScript(data)
	if err != nil {
		return err
	}
	for i, cmd := range cmds {
		res, err := m.Execute(cmd)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		entry := logger.Log.WithFields(logrus.Fields{
			"step":   i,
			"action": cmd.Action,
			"from":   cmd.From,
			"to":     cmd.To,
		})
		if !res.OK {
			entry.Warn("Command refused")
			continue
		}
		for _, e := range res.Events {
			entry.WithField("event", e).Info("Event")
		}
	}
	return nil
}

type reach struct {
	destinations int
	targets      map[domain.Position]*domain.Unit
}

func reachOf(g *domain.Grid, unit *domain.Unit, pos domain.Position) reach {
	pf := systems.NewPathFinder(g, unit, pos)
	r := reach{targets: systems.Threats(g, unit, pos)}
	for range pf.Destinations() {
		r.destinations++
	}
	return r
}
