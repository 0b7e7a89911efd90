// Package handler serves raster decode requests over a websocket: the
// browser viewer sends one frame descriptor plus its compressed payload
// per image and receives the decoded RGBA frame back.
package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/archivekit/pictraster/internal/codec"
	"github.com/archivekit/pictraster/internal/config"
	"github.com/archivekit/pictraster/internal/geom"
	"github.com/archivekit/pictraster/internal/logging"
)

const (
	webSocketReadBufferSize  = 8192
	webSocketWriteBufferSize = 8192 * 2
)

// FrameRequest describes one raster payload. The binary payload follows
// in the next websocket message.
type FrameRequest struct {
	Tag     string      `json:"tag"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Depth   int         `json:"depth"`
	Palette [][3]uint16 `json:"palette,omitempty"`
}

// FrameResponse precedes the decoded RGBA frame. A failed decode
// carries the error text and no binary frame; the connection stays open
// so the rest of the document can still be decoded.
type FrameResponse struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Decode upgrades the connection and serves decode requests until the
// client goes away.
func Decode(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  webSocketReadBufferSize,
		WriteBufferSize: webSocketWriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return isAllowedOrigin(r.Header.Get("Origin"))
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("upgrade websocket: %v", err)
		return
	}

	defer func() {
		if err = wsConn.Close(); err != nil {
			logging.Error("closing websocket: %v", err)
		}
	}()

	cfg := config.GetGlobalConfig()
	if cfg == nil {
		if cfg, err = config.Load(); err != nil {
			logging.Error("load config: %v", err)
			return
		}
	}

	serveFrames(wsConn, cfg)
}

// wsConn is the slice of the websocket connection the frame loop needs.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
}

func serveFrames(conn wsConn, cfg *config.Config) {
	for {
		req, payload, err := readFrame(conn, cfg)
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!strings.HasSuffix(err.Error(), "use of closed network connection") {
				logging.Error("read frame: %v", err)
			}
			return
		}

		rgba, err := decodeFrame(req, payload)
		if err != nil {
			logging.Warn("decode %q %dx%d: %v", req.Tag, req.Width, req.Height, err)
			if err = conn.WriteJSON(FrameResponse{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		logging.Debug("decoded %q %dx%d depth=%d", req.Tag, req.Width, req.Height, req.Depth)

		if err = conn.WriteJSON(FrameResponse{Width: req.Width, Height: req.Height}); err != nil {
			return
		}
		if err = conn.WriteMessage(websocket.BinaryMessage, rgba); err != nil {
			return
		}
	}
}

// readFrame reads one descriptor message and its binary payload.
func readFrame(conn wsConn, cfg *config.Config) (*FrameRequest, []byte, error) {
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		return nil, nil, err
	}
	if msgType != websocket.TextMessage {
		return nil, nil, fmt.Errorf("expected frame descriptor, got message type %d", msgType)
	}

	var req FrameRequest
	if err = json.Unmarshal(data, &req); err != nil {
		return nil, nil, fmt.Errorf("bad frame descriptor: %w", err)
	}

	if req.Width <= 0 || req.Width > cfg.Decode.MaxWidth ||
		req.Height <= 0 || req.Height > cfg.Decode.MaxHeight {
		return nil, nil, fmt.Errorf("dimensions %dx%d outside limits", req.Width, req.Height)
	}

	msgType, payload, err := conn.ReadMessage()
	if err != nil {
		return nil, nil, err
	}
	if msgType != websocket.BinaryMessage {
		return nil, nil, fmt.Errorf("expected payload, got message type %d", msgType)
	}
	if len(payload) > cfg.Decode.MaxPayloadBytes {
		return nil, nil, fmt.Errorf("payload of %d bytes exceeds limit", len(payload))
	}

	return &req, payload, nil
}

func decodeFrame(req *FrameRequest, payload []byte) ([]byte, error) {
	// Coordinates are 16-bit in the raster model; the config limits may
	// be raised above that range.
	if req.Width > math.MaxInt16 || req.Height > math.MaxInt16 {
		return nil, fmt.Errorf("dimensions %dx%d exceed coordinate range", req.Width, req.Height)
	}

	var clut *codec.ColorTable
	if len(req.Palette) > 0 {
		clut = &codec.ColorTable{Colors: make([]codec.RGB, len(req.Palette))}
		for i, c := range req.Palette {
			clut.Colors[i] = codec.RGB{R: c[0], G: c[1], B: c[2]}
		}
	}

	pm, err := codec.Decode(payload, codec.Options{
		Tag: req.Tag,
		Dim: geom.Delta{
			DV: geom.FixedFromInt(int16(req.Height)),
			DH: geom.FixedFromInt(int16(req.Width)),
		},
		Depth: req.Depth,
		CLUT:  clut,
	})
	if err != nil {
		return nil, err
	}

	return codec.ToRGBA(pm)
}

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	normalized := strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://")
	normalized = strings.TrimSuffix(normalized, "/")

	allowed := os.Getenv("ALLOWED_ORIGINS")
	if allowed == "" {
		return strings.HasPrefix(normalized, "localhost") || strings.HasPrefix(normalized, "127.0.0.1")
	}

	// Localhost-style origins stay allowed for development even when a
	// list is provided.
	if strings.HasPrefix(normalized, "localhost") || strings.HasPrefix(normalized, "127.0.0.1") {
		return true
	}

	for _, entry := range strings.Split(allowed, ",") {
		candidate := strings.TrimSpace(entry)
		if candidate == "" {
			continue
		}

		if candidate == origin || candidate == normalized {
			return true
		}

		if strings.TrimPrefix(candidate, "http://") == normalized || strings.TrimPrefix(candidate, "https://") == normalized {
			return true
		}
	}

	return false
}
