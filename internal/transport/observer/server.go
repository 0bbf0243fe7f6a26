// Package observer exposes a world over a websocket so an external
// observer — a renderer, a debugging tool — can query raycasts and
// per-chunk face-visibility masks without linking against the engine
// itself.
package observer

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voxelcore/voxelengine/internal/voxel/geometry"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
	"github.com/voxelcore/voxelengine/internal/voxel/world"
)

// MessageType discriminates the JSON envelopes this protocol exchanges.
type MessageType string

const (
	TypeRaycastRequest  MessageType = "RAYCAST"
	TypeRaycastResponse MessageType = "RAYCAST_RESULT"
	TypeFaceMaskRequest MessageType = "FACE_MASK"
	TypeFaceMaskResult  MessageType = "FACE_MASK_RESULT"
	TypeError           MessageType = "ERROR"
)

// Envelope is the outer shape every message on the connection has; Type
// says which of the payload fields below is populated.
type Envelope struct {
	Type MessageType `json:"type"`

	Raycast     *RaycastRequest  `json:"raycast,omitempty"`
	RaycastHit  *RaycastResult   `json:"raycast_result,omitempty"`
	FaceMask    *FaceMaskRequest `json:"face_mask,omitempty"`
	FaceMaskRes *FaceMaskResult  `json:"face_mask_result,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// RaycastRequest asks the server to cast a ray through the bound world.
type RaycastRequest struct {
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
	SZ float64 `json:"sz"`
	EX float64 `json:"ex"`
	EY float64 `json:"ey"`
	EZ float64 `json:"ez"`
}

// RaycastResult is the answer to a RaycastRequest.
type RaycastResult struct {
	Hit  bool     `json:"hit"`
	Vox  [6]int32 `json:"voxel,omitempty"` // vx,vy,vz,bx,by,bz
	CX   int32    `json:"cx,omitempty"`
	CY   int32    `json:"cy,omitempty"`
	CZ   int32    `json:"cz,omitempty"`
}

// FaceMaskRequest asks the server to solve a chunk's face-visibility
// mask buffer. The chunk is addressed by its chunk-grid coordinates.
type FaceMaskRequest struct {
	CX int32 `json:"cx"`
	CY int32 `json:"cy"`
	CZ int32 `json:"cz"`
}

// FaceMaskResult is the answer to a FaceMaskRequest: Present reports
// whether the chunk exists at all, and Mask (omitted if absent) is its
// 4096-byte face-visibility buffer, one byte per bitvoxel.
type FaceMaskResult struct {
	Present bool   `json:"present"`
	Mask    []byte `json:"mask,omitempty"`
}

// Server streams query/response pairs against a bound world over
// websocket connections.
type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
}

// NewServer binds a Server to w, logging through logger.
func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// InfoResponse is served by InfoHandler: a snapshot of the bound
// world's size, for a local debugging tool to poll before opening a
// websocket connection.
type InfoResponse struct {
	ChunkCount int `json:"chunk_count"`
}

// InfoHandler returns the http.HandlerFunc for a loopback-only GET
// endpoint reporting the bound world's chunk count.
func (s *Server) InfoHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(InfoResponse{ChunkCount: s.world.Len()})
	}
}

// Handler returns the http.HandlerFunc to mount at the observer's
// websocket endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var env Envelope
			if err := json.Unmarshal(msg, &env); err != nil {
				s.writeError(conn, "malformed envelope")
				continue
			}

			switch env.Type {
			case TypeRaycastRequest:
				s.handleRaycast(conn, env.Raycast)
			case TypeFaceMaskRequest:
				s.handleFaceMask(conn, env.FaceMask)
			default:
				s.writeError(conn, "unknown message type: "+string(env.Type))
			}
		}
	}
}

func (s *Server) handleRaycast(conn *websocket.Conn, req *RaycastRequest) {
	if req == nil {
		s.writeError(conn, "missing raycast payload")
		return
	}
	hit, ok := s.world.Raycaster().Cast(req.SX, req.SY, req.SZ, req.EX, req.EY, req.EZ)
	result := RaycastResult{Hit: ok}
	if ok {
		result.Vox = [6]int32{
			int32(hit.Voxel.VX()), int32(hit.Voxel.VY()), int32(hit.Voxel.VZ()),
			int32(hit.Voxel.BX()), int32(hit.Voxel.BY()), int32(hit.Voxel.BZ()),
		}
		result.CX, result.CY, result.CZ = int32(hit.ChunkKey.X()), int32(hit.ChunkKey.Y()), int32(hit.ChunkKey.Z())
	}
	s.write(conn, Envelope{Type: TypeRaycastResponse, RaycastHit: &result})
}

func (s *Server) handleFaceMask(conn *websocket.Conn, req *FaceMaskRequest) {
	if req == nil {
		s.writeError(conn, "missing face_mask payload")
		return
	}
	key := spatial.NewMortonKey(req.CX, req.CY, req.CZ)
	chunk, ok := s.world.GetChunk(key)
	if !ok {
		s.write(conn, Envelope{Type: TypeFaceMaskResult, FaceMaskRes: &FaceMaskResult{Present: false}})
		return
	}
	mask := geometry.Solve(chunk, s.world)
	s.write(conn, Envelope{Type: TypeFaceMaskResult, FaceMaskRes: &FaceMaskResult{Present: true, Mask: mask[:]}})
}

func (s *Server) write(conn *websocket.Conn, env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (s *Server) writeError(conn *websocket.Conn, msg string) {
	s.write(conn, Envelope{Type: TypeError, Error: msg})
}

// isLoopbackRemote reports whether addr (a net.Conn.RemoteAddr string)
// is a loopback address, for handlers that restrict bootstrap
// information to local callers.
func isLoopbackRemote(addr string) bool {
	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	return host == "127.0.0.1" || host == "::1" || host == "localhost"
}
