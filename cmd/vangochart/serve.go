package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/recera/vangochart/internal/cache"
	"github.com/recera/vangochart/internal/config"
	"github.com/recera/vangochart/internal/dataset"
	"github.com/recera/vangochart/pkg/barchart"
	"github.com/recera/vangochart/pkg/renderer/html"
	"github.com/recera/vangochart/pkg/vango/vdom"
)

type chartServer struct {
	cfg      *config.Config
	chart    *barchart.Chart
	dataPath string
	cache    *cache.Cache
	watcher  *fsnotify.Watcher

	mu      sync.RWMutex
	current *cache.Entry
	lastErr error

	wsClients map[*websocket.Conn]bool
	wsMutex   sync.Mutex
	upgrader  websocket.Upgrader
}

func newServeCommand(cfgFile *string) *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve <data-file>",
		Short: "Serve a chart and re-render it when the data file changes",
		Long: `Starts an HTTP server showing the chart for a data file. The file is watched
and connected browsers receive the re-rendered chart over a websocket.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, chart, err := loadChart(*cfgFile)
			if err != nil {
				return err
			}

			// CLI takes precedence
			if port != 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			return runServe(cfg, chart, args[0])
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func newChartServer(cfg *config.Config, chart *barchart.Chart, dataPath string) (*chartServer, error) {
	abs, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache.Size)
	if err != nil {
		return nil, err
	}

	return &chartServer{
		cfg:       cfg,
		chart:     chart,
		dataPath:  abs,
		cache:     c,
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

func runServe(cfg *config.Config, chart *barchart.Chart, dataPath string) error {
	server, err := newChartServer(cfg, chart, dataPath)
	if err != nil {
		return err
	}

	if _, err := server.refresh(); err != nil {
		return fmt.Errorf("failed to render %s: %w", dataPath, err)
	}

	// Watch the directory: editors often replace the file instead of writing it
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := watcher.Add(filepath.Dir(server.dataPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dataPath, err)
	}

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: server.router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("✨ Serving %s at http://%s\n", dataPath, addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Printf("👀 Watching %s for changes", dataPath)
		return server.watchFiles(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("🛑 Shutting down server...")
		server.closeClients()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *chartServer) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/chart.svg", s.serveSVG).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.serveStats).Methods(http.MethodGet)
	r.HandleFunc("/live", s.handleWebSocket)
	return r
}

// refresh reloads the data file and renders it, returning the patches from
// the previously rendered chart. The first render returns no patches.
func (s *chartServer) refresh() ([]vdom.Patch, error) {
	series, err := dataset.Load(s.dataPath)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	key := cache.Key(series.Values, series.Labels, s.chart.Options())
	entry, hit, err := s.cache.GetOrRender(key, func() (*cache.Entry, error) {
		node, err := s.chart.Render(series.Values, series.Labels)
		if err != nil {
			return nil, err
		}
		markup, err := html.RenderToString(node)
		if err != nil {
			return nil, err
		}
		return &cache.Entry{Node: node, Markup: markup}, nil
	})
	if err != nil {
		s.setError(err)
		return nil, err
	}
	if hit {
		log.Printf("📦 Cache hit for %s", filepath.Base(s.dataPath))
	}

	s.mu.Lock()
	prev := s.current
	s.current = entry
	s.lastErr = nil
	s.mu.Unlock()

	if prev == nil {
		return nil, nil
	}
	return vdom.Diff(prev.Node, entry.Node), nil
}

func (s *chartServer) setError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *chartServer) snapshot() (*cache.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.lastErr
}

func (s *chartServer) watchFiles(ctx context.Context) error {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if !s.isDataFile(event.Name) || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			pending = true
			debounce.Reset(s.cfg.Server.Debounce())

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			if pending {
				pending = false
				s.handleFileChange()
			}
		}
	}
}

func (s *chartServer) isDataFile(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == s.dataPath
}

func (s *chartServer) handleFileChange() {
	name := filepath.Base(s.dataPath)
	log.Printf("🔄 %s changed, re-rendering...", name)

	start := time.Now()
	patches, err := s.refresh()
	if err != nil {
		log.Printf("❌ Render failed: %v", err)
		s.notifyClients("error", map[string]interface{}{
			"message": err.Error(),
		})
		return
	}

	if len(patches) == 0 {
		log.Printf("✅ %s unchanged", name)
		return
	}

	entry, _ := s.snapshot()
	log.Printf("✅ Re-rendered %s in %v (%d patches)", name, time.Since(start), len(patches))
	s.notifyClients("chart", map[string]interface{}{
		"svg":     entry.Markup,
		"patches": len(patches),
	})
}

func (s *chartServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	entry, err := s.snapshot()
	if entry == nil {
		http.Error(w, fmt.Sprintf("chart unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := html.WriteDocument(w, html.Page{Title: s.cfg.Title, Chart: entry.Node, Live: true}); err != nil {
		log.Printf("Failed to write page: %v", err)
	}
}

func (s *chartServer) serveSVG(w http.ResponseWriter, r *http.Request) {
	entry, err := s.snapshot()
	if entry == nil {
		http.Error(w, fmt.Sprintf("chart unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}

	markup, err := html.RenderToString(entry.Node, html.Standalone())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(markup))
}

func (s *chartServer) serveStats(w http.ResponseWriter, r *http.Request) {
	_, lastErr := s.snapshot()
	stats := s.cache.GetStats()

	resp := map[string]interface{}{
		"cache":    stats,
		"hit_rate": stats.HitRate(),
		"clients":  s.clientCount(),
	}
	if lastErr != nil {
		resp["error"] = lastErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *chartServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Register client
	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			s.wsMutex.Lock()
			conn.WriteJSON(map[string]interface{}{
				"type": "ACK",
			})
			s.wsMutex.Unlock()
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

// notifyClients sends a message to every connected browser. Writes hold
// wsMutex since a websocket connection allows only one concurrent writer.
func (s *chartServer) notifyClients(msgType string, data map[string]interface{}) {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *chartServer) clientCount() int {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	return len(s.wsClients)
}

func (s *chartServer) closeClients() {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()

	for client := range s.wsClients {
		client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		client.Close()
	}
}
