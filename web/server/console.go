package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent log lines of a session for the viewer
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console that remembers up to limit messages
func NewConsole(limit int) *Console {
	return &Console{limit: limit}
}

func (c *Console) add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if len(c.messages) > c.limit {
		c.messages = c.messages[len(c.messages)-c.limit:]
	}
}

// Messages returns a copy of the remembered messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}

// WebLogger implements core.Logger by writing to glog and to a session console
type WebLogger struct {
	sessionID string
	console   *Console
}

// NewWebLogger creates a new web logger for a specific session
func NewWebLogger(sessionID string, console *Console) core.Logger {
	return &WebLogger{
		sessionID: sessionID,
		console:   console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	glog.Infof("[%s] %s", wl.sessionID, message)

	if wl.console != nil {
		wl.console.add(ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
