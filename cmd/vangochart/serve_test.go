package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/recera/vangochart/internal/config"
	"github.com/recera/vangochart/pkg/barchart"
)

func writeData(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T, content string) (*chartServer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	writeData(t, path, content)

	cfg := config.Default()
	cfg.Server.DebounceMs = 10
	s, err := newChartServer(cfg, barchart.New(cfg.ChartOptions()), path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.refresh(); err != nil {
		t.Fatalf("refresh() error: %v", err)
	}
	return s, path
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServe_Routes(t *testing.T) {
	s, _ := newTestServer(t, "a,3\nb,12\nc,45\n")
	ts := httptest.NewServer(s.router())
	defer ts.Close()

	tests := []struct {
		path        string
		contentType string
		contains    []string
	}{
		{"/", "text/html; charset=utf-8", []string{"<!DOCTYPE html>", `<main id="chart"><svg `, "new WebSocket("}},
		{"/chart.svg", "image/svg+xml", []string{`xmlns="http://www.w3.org/2000/svg"`, "<rect ", ">45</text>"}},
		{"/stats", "application/json", []string{`"hit_rate"`, `"clients":0`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body should contain %q, got:\n%s", want, body)
				}
			}
		})
	}

	resp, err := http.Post(ts.URL+"/chart.svg", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /chart.svg status = %d, want 405", resp.StatusCode)
	}
}

func TestServe_RefreshUsesCache(t *testing.T) {
	s, path := newTestServer(t, "a,1\nb,2\n")

	patches, err := s.refresh()
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 0 {
		t.Errorf("unchanged data produced %d patches", len(patches))
	}
	if stats := s.cache.GetStats(); stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("cache stats = %+v", stats)
	}

	writeData(t, path, "a,1\nb,3\n")
	patches, err = s.refresh()
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) == 0 {
		t.Error("changed data produced no patches")
	}
}

func TestServe_RefreshError(t *testing.T) {
	s, path := newTestServer(t, "a,1\n")
	ts := httptest.NewServer(s.router())
	defer ts.Close()

	writeData(t, path, "a,-5\n")
	if _, err := s.refresh(); err == nil {
		t.Fatal("expected error for negative value")
	}

	// The last good chart stays available.
	if resp, _ := get(t, ts.URL+"/chart.svg"); resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var stats map[string]interface{}
	_, body := get(t, ts.URL+"/stats")
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		t.Fatal(err)
	}
	if msg, _ := stats["error"].(string); !strings.Contains(msg, "non-negative") {
		t.Errorf("stats error = %q", msg)
	}
}

func dialLive(t *testing.T, s *chartServer, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Round-trip a HELLO so the handler has registered the client.
	if err := conn.WriteJSON(map[string]string{"type": "HELLO"}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ack map[string]interface{}
	if err := conn.ReadJSON(&ack); err != nil || ack["type"] != "ACK" {
		t.Fatalf("ack = %v, err = %v", ack, err)
	}
	if n := s.clientCount(); n != 1 {
		t.Fatalf("clientCount() = %d, want 1", n)
	}
	return conn
}

func TestServe_LiveUpdates(t *testing.T) {
	s, path := newTestServer(t, "a,3\nb,12\n")
	ts := httptest.NewServer(s.router())
	defer ts.Close()
	conn := dialLive(t, s, ts)

	writeData(t, path, "a,3\nb,99\n")
	s.handleFileChange()

	var msg struct {
		Type    string `json:"type"`
		SVG     string `json:"svg"`
		Patches int    `json:"patches"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "CHART" || msg.Patches == 0 || !strings.Contains(msg.SVG, ">99</text>") {
		t.Errorf("message = %+v", msg)
	}

	writeData(t, path, "a,3\nb,oops\n")
	s.handleFileChange()
	var errMsg map[string]interface{}
	if err := conn.ReadJSON(&errMsg); err != nil {
		t.Fatal(err)
	}
	if errMsg["type"] != "ERROR" {
		t.Errorf("message = %v, want ERROR", errMsg)
	}
}

func TestServe_WatchFiles(t *testing.T) {
	s, path := newTestServer(t, "a,1\n")
	ts := httptest.NewServer(s.router())
	defer ts.Close()
	conn := dialLive(t, s, ts)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}
	s.watcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFiles(ctx) }()

	// Unrelated files in the directory are ignored.
	writeData(t, filepath.Join(filepath.Dir(path), "other.csv"), "z,1\n")
	writeData(t, path, "a,1\nb,7\n")

	// A truncate and a write may land in separate debounce windows, so
	// read until the final content arrives.
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("no update received: %v", err)
		}
		if svg, _ := msg["svg"].(string); msg["type"] == "CHART" && strings.Contains(svg, ">7</text>") {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchFiles() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchFiles did not stop")
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "letters.json")
	writeData(t, data, `[{"label":"A","value":8},{"label":"B","value":2}]`)
	chart := barchart.New(barchart.DefaultOptions())

	var stdout bytes.Buffer
	if err := runRender(data, "", "svg", "", chart, &stdout); err != nil {
		t.Fatalf("runRender(svg) error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "<svg ") || !strings.Contains(stdout.String(), `xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("svg output = %s", stdout.String())
	}

	out := filepath.Join(dir, "chart.html")
	stdout.Reset()
	if err := runRender(data, out, formatFromOutput(out), "Letters", chart, &stdout); err != nil {
		t.Fatalf("runRender(html) error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Error("file output should not write to stdout")
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<title>Letters</title>") || strings.Contains(string(page), "WebSocket") {
		t.Errorf("html output = %s", page)
	}

	if err := runRender(data, "", "png", "", chart, &stdout); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := runRender(filepath.Join(dir, "missing.csv"), "", "svg", "", chart, &stdout); err == nil {
		t.Error("expected error for missing data file")
	}
}

func TestFormatFromOutput(t *testing.T) {
	tests := map[string]string{
		"":           "svg",
		"-":          "svg",
		"chart.svg":  "svg",
		"chart.html": "html",
		"CHART.HTM":  "html",
	}
	for output, want := range tests {
		if got := formatFromOutput(output); got != want {
			t.Errorf("formatFromOutput(%q) = %q, want %q", output, got, want)
		}
	}
}
