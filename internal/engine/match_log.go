package engine

import (
	"fmt"
	"time"

	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Log entry types.
const (
	LogInfo    = "INFO"
	LogCombat  = "COMBAT"
	LogCapture = "CAPTURE"
	LogTurn    = "TURN"
)

// LogEntry is one line of the match history shown to players.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// AddLog appends to the match history and mirrors the line to the process log.
func (m *Match) AddLog(text, logType string) {
	m.Logs = append(m.Logs, LogEntry{
		ID:        fmt.Sprintf("%s_%d", m.ID, len(m.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"match":     m.ID,
		"component": "match_log",
		"log_type":  logType,
	}).Info(text)
}
