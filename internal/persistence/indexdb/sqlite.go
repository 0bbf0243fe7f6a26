// Package indexdb maintains a sqlite-backed secondary index of which
// chunks exist in which world and when they were last touched, plus a
// record of snapshot files written for each world. It is a secondary
// index only: the snapshot files themselves remain the source of truth
// for chunk contents.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
)

// ChunkIndex is a secondary sqlite index over a world's chunks. Writes
// go through a buffered channel drained by a single background writer
// goroutine so indexing never blocks whatever loop is mutating the
// world; reads go straight to the database.
type ChunkIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqChunk reqKind = iota + 1
	reqSnapshot
)

type req struct {
	kind     reqKind
	chunk    chunkRow
	snapshot snapshotRow
}

type chunkRow struct {
	WorldID   string
	ScalarKey uint32
	MetaWidth int
	BitCount  uint32
	UpdatedAt string
}

type snapshotRow struct {
	WorldID    string
	Path       string
	ChunkCount int
	RecordedAt string
}

// OpenSQLite opens (creating if absent) the index database at path and
// starts its background writer goroutine.
func OpenSQLite(path string) (*ChunkIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("indexdb: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	idx := &ChunkIndex{
		db: db,
		// High buffer: a bulk chunk load or a fast raycast sweep can
		// generate many upserts in a single tick without stalling it.
		ch: make(chan req, 65536),
	}
	idx.wg.Add(1)
	go func() {
		defer idx.wg.Done()
		idx.loop()
	}()
	return idx, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			world_id TEXT NOT NULL,
			scalar_key INTEGER NOT NULL,
			meta_width INTEGER NOT NULL,
			bit_count INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (world_id, scalar_key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_world ON chunks(world_id);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			world_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			path TEXT NOT NULL,
			chunk_count INTEGER NOT NULL,
			PRIMARY KEY (world_id, recorded_at)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the writer queue and closes the database. It is
// idempotent and safe to call on a nil *ChunkIndex.
func (idx *ChunkIndex) Close() error {
	if idx == nil {
		return nil
	}
	var err error
	idx.once.Do(func() {
		idx.closed.Store(true)
		close(idx.ch)
		idx.wg.Wait()
		err = idx.db.Close()
	})
	return err
}

// UpsertChunk records that c, belonging to worldID, exists and is as
// current as of now. Writes are fire-and-forget: if the writer queue is
// full, the update is dropped — the index is a secondary structure, not
// the chunk's source of truth.
func (idx *ChunkIndex) UpsertChunk(worldID string, c chunkstore.Chunk) {
	if idx == nil || idx.closed.Load() {
		return
	}
	row := chunkRow{
		WorldID:   worldID,
		ScalarKey: c.Key().Key(),
		MetaWidth: int(c.MetaWidth()),
		BitCount:  c.Length(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case idx.ch <- req{kind: reqChunk, chunk: row}:
	default:
	}
}

// RecordSnapshot records that a snapshot file was written for worldID.
func (idx *ChunkIndex) RecordSnapshot(worldID, path string, chunkCount int) {
	if idx == nil || idx.closed.Load() {
		return
	}
	row := snapshotRow{
		WorldID:    worldID,
		Path:       path,
		ChunkCount: chunkCount,
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case idx.ch <- req{kind: reqSnapshot, snapshot: row}:
	default:
	}
}

// ChunkKeys returns the Morton scalar keys of every chunk indexed for
// worldID. It reads straight from the database, bypassing the write
// queue, so a very recent UpsertChunk may not yet be visible.
func (idx *ChunkIndex) ChunkKeys(worldID string) ([]uint32, error) {
	rows, err := idx.db.Query(`SELECT scalar_key FROM chunks WHERE world_id = ? ORDER BY scalar_key`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []uint32
	for rows.Next() {
		var k uint32
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (idx *ChunkIndex) loop() {
	insertChunk, _ := idx.db.Prepare(`INSERT OR REPLACE INTO chunks(world_id,scalar_key,meta_width,bit_count,updated_at) VALUES(?,?,?,?,?)`)
	insertSnapshot, _ := idx.db.Prepare(`INSERT OR REPLACE INTO snapshots(world_id,recorded_at,path,chunk_count) VALUES(?,?,?,?)`)
	defer func() {
		if insertChunk != nil {
			_ = insertChunk.Close()
		}
		if insertSnapshot != nil {
			_ = insertSnapshot.Close()
		}
	}()

	for r := range idx.ch {
		switch r.kind {
		case reqChunk:
			if insertChunk != nil {
				_, _ = insertChunk.Exec(r.chunk.WorldID, r.chunk.ScalarKey, r.chunk.MetaWidth, r.chunk.BitCount, r.chunk.UpdatedAt)
			}
		case reqSnapshot:
			if insertSnapshot != nil {
				_, _ = insertSnapshot.Exec(r.snapshot.WorldID, r.snapshot.RecordedAt, r.snapshot.Path, r.snapshot.ChunkCount)
			}
		}
	}
}
