package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/kitresolve/internal/emit"
	"github.com/vk/kitresolve/internal/notify"
	"github.com/vk/kitresolve/internal/notify/notifytest"
	"github.com/vk/kitresolve/internal/registry"
	"github.com/vk/kitresolve/internal/resolver"
)

const sampleHCL = `
preprocess = { typescript = true }
kit {
  adapter "node" {
    out = "dist"
  }
  alias = {
    "@components" = "./src/lib/components"
    "@services"   = "./src/lib/services"
  }
}
`

func newTestConfig(t *testing.T, name, content string) *Config {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	cfg, err := NewConfig(Config{ConfigPath: path})
	require.NoError(t, err)
	return cfg
}

type resolvedDoc struct {
	ProjectRoot string               `json:"projectRoot"`
	Preprocess  map[string]any       `json:"preprocess"`
	Adapter     emit.AdapterDocument `json:"adapter"`
	Aliases     map[string]string    `json:"aliases"`
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	t.Parallel()

	// --- Arrange & Act ---
	a, _, _ := SetupAppTest(t, &Config{})

	// --- Assert ---
	require.Equal(t, []string{"auto", "node", "static"}, a.Registry().Names())
}

func TestNewApp_PanicsOnInvalidModule(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		SetupAppTest(t, &Config{}, brokenModule{})
	})
}

type brokenModule struct{}

func (brokenModule) Register(r *registry.Registry) {
	r.RegisterAdapter("broken", &registry.RegisteredAdapter{
		NewOptions: func() any { return "not a struct" },
	})
}

func TestRun_WritesJSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.hcl", sampleHCL)
	a, out, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	var doc resolvedDoc
	require.NoError(t, json.Unmarshal([]byte(out.String()), &doc))
	require.Equal(t, cfg.ProjectRoot, doc.ProjectRoot)
	require.Equal(t, map[string]any{"typescript": true}, doc.Preprocess)
	require.Equal(t, "node", doc.Adapter.Name)
	require.Equal(t, map[string]string{
		"@components": filepath.Join(cfg.ProjectRoot, "src/lib/components"),
		"@services":   filepath.Join(cfg.ProjectRoot, "src/lib/services"),
	}, doc.Aliases)
}

func TestRun_WritesOutFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.yaml", "kit:\n  alias:\n    $lib: ./src/lib\n")
	cfg.Format = emit.FormatTSConfig
	cfg.TSBase = cfg.ProjectRoot
	cfg.OutPath = filepath.Join(t.TempDir(), "paths.json")
	a, out, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Empty(t, out.String())
	data, err := os.ReadFile(cfg.OutPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"$lib/*"`)
	require.Contains(t, string(data), `"./src/lib/*"`)
}

func TestRun_SandboxRejectsEscapingAlias(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.json", `{"kit": {"alias": {"@up": "../outside"}}}`)
	cfg.Sandbox = true
	a, out, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, resolver.ErrInvalidAliasPath)
	require.Empty(t, out.String())
}

func TestRun_NotifyFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.json", `{"kit": {}}`)
	cfg.NotifyURL = "ftp://localhost"
	a, _, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorContains(t, err, "failed to connect to dev server")
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.hcl", "a.json", "a.JSONC", "a.yaml", "a.yml"} {
		l, err := loaderFor(name)
		require.NoError(t, err, name)
		require.NotNil(t, l, name)
	}

	_, err := loaderFor("svelte.config.js")
	require.ErrorContains(t, err, `unsupported configuration file extension ".js"`)
}

func TestRun_WatchReResolvesOnChange(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.json", `{"kit": {"alias": {"@a": "./a"}}}`)
	cfg.Watch = true
	cfg.Interval = 10 * time.Millisecond
	a, out, _ := SetupAppTest(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// --- Act ---
	go func() { done <- a.Run(ctx) }()

	// --- Assert ---
	require.Eventually(t, func() bool {
		doc, ok := a.Current()
		return ok && strings.Contains(string(doc), `"@a"`)
	}, 2*time.Second, 10*time.Millisecond)

	// Invalid content keeps the previous document.
	require.NoError(t, os.WriteFile(cfg.ConfigPath, []byte(`{"kit": {"adapter": "nope"}}`), 0600))
	time.Sleep(50 * time.Millisecond)
	doc, ok := a.Current()
	require.True(t, ok)
	require.Contains(t, string(doc), `"@a"`)

	require.NoError(t, os.WriteFile(cfg.ConfigPath, []byte(`{"kit": {"alias": {"@a": "./a", "@bb": "./b"}}}`), 0600))
	require.Eventually(t, func() bool {
		doc, ok := a.Current()
		return ok && strings.Contains(string(doc), `"@bb"`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	require.Contains(t, out.String(), `"@bb"`)
}

func TestHealthcheckHandlers(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := newTestConfig(t, "kit.config.json", `{"kit": {"alias": {"@a": "./a"}}}`)
	a, _, _ := SetupAppTest(t, cfg)
	srv := httptest.NewServer(a.handler())
	t.Cleanup(srv.Close)

	// --- Act & Assert ---
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/config")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resolved, err := a.Resolve(context.Background())
	require.NoError(t, err)
	require.NoError(t, a.storeCurrent(resolved))

	resp, err = http.Get(srv.URL + "/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var doc resolvedDoc
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Equal(t, filepath.Join(cfg.ProjectRoot, "a"), doc.Aliases["@a"])
}

func TestCloseHealthcheckServer_NotRunning(t *testing.T) {
	t.Parallel()

	a, _, _ := SetupAppTest(t, &Config{})
	require.NoError(t, a.closeHealthcheckServer(context.Background()))
}

func TestRun_NotifiesResolvedDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := notifytest.NewServer(t)
	cfg := newTestConfig(t, "kit.config.hcl", sampleHCL)
	cfg.NotifyURL = srv.URL
	a, _, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	ev := srv.WaitFor(t, notify.EventResolved, 5*time.Second)
	require.Len(t, ev.Args, 1)
	doc, ok := ev.Args[0].(map[string]any)
	require.True(t, ok, "got %T", ev.Args[0])
	require.Equal(t, cfg.ProjectRoot, doc["projectRoot"])
	require.Equal(t, map[string]any{"name": "node", "options": map[string]any{
		"out": "dist", "precompress": false, "env_prefix": "",
	}}, doc["adapter"])
	require.Equal(t, filepath.Join(cfg.ProjectRoot, "src/lib/services"), doc["aliases"].(map[string]any)["@services"])
}

func TestRun_WatchNotifiesFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := notifytest.NewServer(t)
	cfg := newTestConfig(t, "kit.config.json", `{"kit": {"alias": {"@a": "./a"}}}`)
	cfg.NotifyURL = srv.URL
	cfg.Watch = true
	cfg.Interval = 10 * time.Millisecond
	a, _, _ := SetupAppTest(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	srv.WaitFor(t, notify.EventResolved, 5*time.Second)

	// --- Act ---
	require.NoError(t, os.WriteFile(cfg.ConfigPath, []byte(`{"kit": {"adapter": "netlify"}}`), 0600))

	// --- Assert ---
	ev := srv.WaitFor(t, notify.EventFailed, 5*time.Second)
	require.Len(t, ev.Args, 1)
	payload, ok := ev.Args[0].(map[string]any)
	require.True(t, ok, "got %T", ev.Args[0])
	require.Contains(t, payload["error"], "netlify")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
