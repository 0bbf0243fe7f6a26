// Package snapshot persists a world's resident chunks to disk as a
// gob-encoded, zstd-compressed stream, the same on-disk shape the
// original simulation server used for its own world snapshots.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
	"github.com/voxelcore/voxelengine/internal/voxel/world"
)

// Header is the JSON line written ahead of the gob payload. It sits
// inside the zstd stream, so reading it requires decompressing the file
// but not decoding the gob payload. Read skips this line and returns the
// copy of the header stored in the gob payload.
type Header struct {
	Version    int    `json:"version"`
	WorldID    string `json:"world_id"`
	ChunkCount int    `json:"chunk_count"`
}

// ChunkRecord is one chunk's on-disk form: its Morton scalar key, its
// metadata width, the BVXLayer's raw words, and (if MetaWidth>0) the
// per-voxel metadata values keyed by vKey.
type ChunkRecord struct {
	Key       uint32
	MetaWidth chunkstore.MetaWidth
	Words     []uint32
	Meta      []uint32
}

// WorldSnapshot is the full decoded payload of one snapshot file.
type WorldSnapshot struct {
	Header Header
	Chunks []ChunkRecord
}

// Write serializes every chunk currently resident in w to path, writing
// one zstd-compressed stream that holds a JSON Header line followed by
// the gob-encoded WorldSnapshot. SizeLog,
// if non-nil, receives a human-readable summary of the written file
// once the encoder has flushed — a caller with no logger to hand wants
// nil.
func Write(path, worldID string, w *world.World, sizeLog func(msg string)) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var chunks []ChunkRecord
	w.Range(func(c chunkstore.Chunk) bool {
		chunks = append(chunks, toRecord(c))
		return true
	})

	header := Header{Version: 1, WorldID: worldID, ChunkCount: len(chunks)}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&WorldSnapshot{Header: header, Chunks: chunks}); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}

	if sizeLog != nil {
		if err := bw.Flush(); err == nil && enc.Flush() == nil {
			if st, err := f.Stat(); err == nil {
				sizeLog(fmt.Sprintf("wrote snapshot %s (%d chunks, %s)", path, len(chunks), humanize.Bytes(uint64(st.Size()))))
			}
		}
	}
	return nil
}

// Read decodes a snapshot file written by Write into a fresh World, with
// bucketCount hash grid buckets.
func Read(path string, bucketCount int) (*world.World, Header, error) {
	var snap WorldSnapshot
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, Header{}, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return nil, Header{}, fmt.Errorf("gob decode: %w", err)
	}

	w := world.New(bucketCount)
	for _, rec := range snap.Chunks {
		w.Insert(fromRecord(rec))
	}
	return w, snap.Header, nil
}

func toRecord(c chunkstore.Chunk) ChunkRecord {
	rec := ChunkRecord{
		Key:       c.Key().Key(),
		MetaWidth: c.MetaWidth(),
		Words:     append([]uint32(nil), c.Layer().Words()...),
	}
	if rec.MetaWidth != chunkstore.Meta0 {
		rec.Meta = make([]uint32, 64)
		for vKey := uint32(0); vKey < 64; vKey++ {
			rec.Meta[vKey] = c.GetMeta(vKey)
		}
	}
	return rec
}

func fromRecord(rec ChunkRecord) chunkstore.Chunk {
	key := spatial.MortonKeyFromScalar(rec.Key)
	var c chunkstore.Chunk
	switch rec.MetaWidth {
	case chunkstore.Meta8:
		c = chunkstore.NewChunk8(key)
	case chunkstore.Meta16:
		c = chunkstore.NewChunk16(key)
	case chunkstore.Meta32:
		c = chunkstore.NewChunk32(key)
	default:
		c = chunkstore.NewChunk0(key)
	}

	copy(c.Layer().Words(), rec.Words)
	for vKey, v := range rec.Meta {
		c.SetMeta(uint32(vKey), v)
	}
	return c
}
