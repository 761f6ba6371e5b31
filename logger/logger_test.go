package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/protodart/protodart/logger"
)

func TestLogger(t *testing.T) {
	t.Run("logs are written out after SetOutput is called", func(t *testing.T) {
		defer logger.Reset()
		w := new(bytes.Buffer)
		logger.SetOutput(w)
		logger.Println("miyamori")
		if !strings.Contains(w.String(), "miyamori") {
			t.Errorf("expected the output to contain the logged line, but got '%s'", w.String())
		}
		if !strings.HasPrefix(w.String(), "protodart: ") {
			t.Errorf("expected the default prefix, but got '%s'", w.String())
		}
	})

	t.Run("logs are discarded by default", func(t *testing.T) {
		defer logger.Reset()
		logger.Printf("never seen %s", "anywhere")
	})

	t.Run("SetPrefix replaces the prefix", func(t *testing.T) {
		defer logger.Reset()
		w := new(bytes.Buffer)
		logger.SetOutput(w)
		logger.SetPrefix("gen: ")
		logger.Println("yano")
		if !strings.HasPrefix(w.String(), "gen: ") {
			t.Errorf("expected the replaced prefix, but got '%s'", w.String())
		}
	})
}
