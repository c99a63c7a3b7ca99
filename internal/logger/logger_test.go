package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("production", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("style", "modern").Msg("rendered")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if entry["message"] != "rendered" || entry["style"] != "modern" || entry["service"] != "quote-studio" {
		t.Errorf("entry = %v", entry)
	}
}

func TestDevelopmentLoggerIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("development", &buf)

	log.Debug().Msg("details")
	if !bytes.Contains(buf.Bytes(), []byte("details")) {
		t.Errorf("debug line missing: %q", buf.String())
	}
}
