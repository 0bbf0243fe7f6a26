// Command voxelctl serves a bit-packed voxel world over a websocket
// observer endpoint, periodically snapshotting it to disk and indexing
// its chunks in a local sqlite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/voxelcore/voxelengine/internal/config"
	"github.com/voxelcore/voxelengine/internal/logging"
	"github.com/voxelcore/voxelengine/internal/persistence/indexdb"
	"github.com/voxelcore/voxelengine/internal/persistence/snapshot"
	"github.com/voxelcore/voxelengine/internal/transport/observer"
	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/world"
)

func main() {
	var (
		addr         = flag.String("addr", ":7777", "http listen address")
		configPath   = flag.String("config", "", "path to engine.yaml (optional, falls back to built-in defaults)")
		worldFlag    = flag.String("world", "", "world id (overrides the config file's world_id)")
		dataDir      = flag.String("data", "./data", "runtime data directory")
		snapPath     = flag.String("snapshot", "", "path to a snapshot to load at startup (optional)")
		loadLatest   = flag.Bool("load_latest_snapshot", true, "load the most recent snapshot under -data/snapshots if -snapshot is empty")
		disableIndex = flag.Bool("disable_index", false, "disable the sqlite chunk index")
	)
	flag.Parse()

	logger := logging.NewStdout("voxelctl")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if *worldFlag != "" {
		cfg.WorldID = *worldFlag
	}

	sessionID := uuid.New().String()
	logger.Printf("starting session %s for world %q", sessionID, cfg.WorldID)

	snapshotDir := filepath.Join(*dataDir, "snapshots")

	w, loadedFrom := loadWorld(cfg, *snapPath, *loadLatest, snapshotDir, logger)
	if loadedFrom != "" {
		logger.Printf("loaded %s (%d chunks)", loadedFrom, w.Len())
	} else {
		logger.Printf("starting with an empty world")
	}

	var idx *indexdb.ChunkIndex
	if !*disableIndex {
		dbPath := cfg.IndexDBPath
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(*dataDir, filepath.Base(dbPath))
		}
		var err error
		idx, err = indexdb.OpenSQLite(dbPath)
		if err != nil {
			logger.Fatalf("indexdb: %v", err)
		}
		defer idx.Close()
		reindexAll(idx, cfg.WorldID, w)
	}

	ctx, cancel := signalContext()
	defer cancel()

	if cfg.SnapshotEveryTick > 0 {
		go snapshotLoop(ctx, cfg, w, snapshotDir, idx, logger)
	}

	obsServer := observer.NewServer(w, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", obsServer.InfoHandler())
	mux.HandleFunc("/v1/observe", obsServer.Handler())

	srv := &http.Server{
		Addr:    *addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func loadWorld(cfg config.Engine, snapPath string, loadLatest bool, snapshotDir string, logger *log.Logger) (*world.World, string) {
	path := snapPath
	if path == "" && loadLatest {
		path = latestSnapshot(snapshotDir)
	}
	if path == "" {
		return world.New(cfg.HashGridBuckets), ""
	}

	w, header, err := snapshot.Read(path, cfg.HashGridBuckets)
	if err != nil {
		logger.Printf("failed to load snapshot %s: %v", path, err)
		return world.New(cfg.HashGridBuckets), ""
	}
	if header.WorldID != "" && header.WorldID != cfg.WorldID {
		logger.Printf("snapshot world_id %q differs from configured %q, loading anyway", header.WorldID, cfg.WorldID)
	}
	return w, path
}

func latestSnapshot(dir string) string {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var names []string
	for _, e := range ents {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".snap") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Slice(names, func(i, j int) bool {
		return snapshotTick(names[i]) < snapshotTick(names[j])
	})
	return filepath.Join(dir, names[len(names)-1])
}

func snapshotTick(name string) uint64 {
	base := strings.TrimSuffix(name, ".snap")
	tick, _ := strconv.ParseUint(base, 10, 64)
	return tick
}

func snapshotLoop(ctx context.Context, cfg config.Engine, w *world.World, dir string, idx *indexdb.ChunkIndex, logger *log.Logger) {
	interval := time.Duration(cfg.SnapshotEveryTick) * 100 * time.Millisecond
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := uint64(0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick++
			path := filepath.Join(dir, fmt.Sprintf("%020d.snap", tick))
			if err := snapshot.Write(path, cfg.WorldID, w, func(msg string) { logger.Printf("%s", msg) }); err != nil {
				logger.Printf("snapshot write failed: %v", err)
				continue
			}
			if idx != nil {
				idx.RecordSnapshot(cfg.WorldID, path, w.Len())
			}
		}
	}
}

func reindexAll(idx *indexdb.ChunkIndex, worldID string, w *world.World) {
	w.Range(func(c chunkstore.Chunk) bool {
		idx.UpsertChunk(worldID, c)
		return true
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
