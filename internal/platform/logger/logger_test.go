package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsHashesUserID(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", "U1", "tenant_id", "T1"})
	if len(out) != 4 {
		t.Fatalf("len: want=4 got=%d", len(out))
	}
	hashed, _ := out[1].(string)
	if !strings.HasPrefix(hashed, "hash:") || hashed == "hash:" {
		t.Fatalf("user_id: want hashed value got=%v", out[1])
	}
	if out[3] != "T1" {
		t.Fatalf("tenant_id: want=T1 got=%v", out[3])
	}
}

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"postgres_dsn", "postgres://u:p@h/db", "Authorization", "Bearer x"})
	if out[1] != "[REDACTED]" || out[3] != "[REDACTED]" {
		t.Fatalf("redaction: got=%v", out)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"path", "/api/cart", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("odd kv: got=%v", out)
	}
}

func TestNewTestMode(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("service", "x").Debug("dropped")
	log.Sync()
}
