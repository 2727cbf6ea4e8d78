// Package testutil holds helpers shared by the node module tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/app"
	"github.com/vk/framegridgo/internal/hcl"
	"github.com/zclconf/go-cty/cty"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness is an App with captured log output.
type Harness struct {
	App  *app.App
	Logs *SafeBuffer
}

// NewApp builds an App with the embedded manifests and all core modules.
// mutate may adjust the config before the App is created. Set
// FRAMEGRID_TEST_LOGS=true to print the captured logs after each test.
func NewApp(t *testing.T, mutate func(cfg *app.Config)) *Harness {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.Workers = 3
	cfg.Assets.Root = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	logs := &SafeBuffer{}
	a := app.NewApp(logs, cfg, hcl.NewLoader(), nil)

	t.Cleanup(func() {
		if os.Getenv("FRAMEGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return &Harness{App: a, Logs: logs}
}

// Invoke runs a node and fails the test on error.
func (h *Harness) Invoke(t *testing.T, key string, args map[string]cty.Value) *app.Result {
	t.Helper()
	res, err := h.App.Invoke(context.Background(), key, args)
	require.NoError(t, err)
	return res
}
