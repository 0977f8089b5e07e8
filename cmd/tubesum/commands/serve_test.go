// ABOUTME: Tests for serve command structure
// ABOUTME: Verifies flags and help text

package commands

import (
	"strings"
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
	if !strings.Contains(cmd.Long, "/api/v1/summarize") {
		t.Error("Long description should document the JSON endpoint")
	}

	flag := cmd.Flags().Lookup("addr")
	if flag == nil {
		t.Fatal("--addr flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--addr default = %q, want empty (falls back to HTTP_ADDR)", flag.DefValue)
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	t.Setenv("SUMMARY_CONCURRENCY", "99")

	_, err := runRoot(t, "serve")
	if err == nil || !strings.Contains(err.Error(), "SUMMARY_CONCURRENCY") {
		t.Errorf("err = %v, want config validation error", err)
	}
}
