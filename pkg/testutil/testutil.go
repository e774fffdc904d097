// Package testutil provides testing utilities for the SDE converter
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// WriteFile writes content to rel under root, creating parent directories.
// It is the building block for SDE directory fixtures in walker and
// pipeline tests.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture file: %v", err)
	}
	return path
}

// SolarSystemYAML renders a minimal solarsystem.yaml descriptor fixture.
func SolarSystemYAML(id int, name string, security float64, class string) string {
	return fmt.Sprintf("solarSystemID: %d\nname:\n  en: %s\nsecurity: %g\nsecurityClass: %s\n",
		id, name, security, class)
}

// RegionYAML renders a minimal region.yaml descriptor fixture.
func RegionYAML(id int, name string) string {
	return fmt.Sprintf("regionID: %d\nname:\n  en: %s\n", id, name)
}

// ConstellationYAML renders a minimal constellation.yaml descriptor fixture.
func ConstellationYAML(id int, name string) string {
	return fmt.Sprintf("constellationID: %d\nname:\n  en: %s\n", id, name)
}
