package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FrameUpdate is one SSE "frame" event
type FrameUpdate struct {
	Session   string     `json:"session"`
	Version   uint64     `json:"version"`   // presents so far, may skip values
	ImageData string     `json:"imageData"` // Base64 encoded PNG
	Stats     FrameStats `json:"stats"`
}

// FrameStats is the JSON form of renderer.FrameStats
type FrameStats struct {
	Frame            int     `json:"frame"`
	Edited           bool    `json:"edited"`
	BlendFactor      float64 `json:"blendFactor"`
	Paths            int64   `json:"paths"`
	RaysPerPath      float64 `json:"raysPerPath"`
	AverageLuminance float64 `json:"averageLuminance"`
	FrameMs          float64 `json:"frameMs"`
}

// handleStream sends every new frame as an SSE event until the client leaves
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	var lastVersion uint64
	for {
		// Take the change channel before reading so no present is missed
		changed := s.presenter.Changed()

		data, version, err := s.presenter.EncodePNG()
		if err != nil {
			s.sendSSEEvent(w, "error", fmt.Sprintf("failed to encode frame: %v", err))
			return
		}
		if data != nil && version != lastVersion {
			lastVersion = version
			if err := s.sendFrame(w, data, version); err != nil {
				s.logger.Printf("Stream: %v\n", err)
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-changed:
		}
	}
}

func (s *Server) sendFrame(w http.ResponseWriter, png []byte, version uint64) error {
	s.mu.Lock()
	stats := s.stats
	s.mu.Unlock()

	update := FrameUpdate{
		Session:   s.sessionID,
		Version:   version,
		ImageData: base64.StdEncoding.EncodeToString(png),
		Stats: FrameStats{
			Frame:            stats.Frame,
			Edited:           stats.Edited,
			BlendFactor:      stats.BlendFactor,
			Paths:            stats.Paths,
			RaysPerPath:      stats.RaysPerPath(),
			AverageLuminance: stats.AverageLuminance,
			FrameMs:          float64(stats.TotalTime) / float64(time.Millisecond),
		},
	}
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
