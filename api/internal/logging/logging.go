// Package logging configures the process-wide apex/log handler.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Setup installs a JSON handler outside development and a text handler in it.
// An unknown level falls back to info and is reported once.
func Setup(level string, development bool) {
	SetupWriter(os.Stderr, level, development)
}

func SetupWriter(w io.Writer, level string, development bool) {
	if development {
		log.SetHandler(text.New(w))
	} else {
		log.SetHandler(jsonhandler.New(w))
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.SetLevel(log.InfoLevel)
		log.WithField("level", level).Warn("unknown LOG_LEVEL, using info")
		return
	}
	log.SetLevel(lvl)
}
