package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fete/internal/optimizer"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// progress intervals keep the stream light: one update per percent-ish of
// the subset space, never more than one per completed subset.
const progressEvery = 64

type progressMessage struct {
	Type      string `json:"type"`
	Evaluated int64  `json:"evaluated"`
	Total     int64  `json:"total"`
}

type resultMessage struct {
	Type            string           `json:"type"`
	Recommendations interface{}      `json:"recommendations"`
	Stats           *optimizer.Stats `json:"stats,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// OptimizeStream upgrades to a WebSocket, reads one OptimizeRequest and
// runs it, streaming progress updates followed by a final result frame.
func (p *PlannerAPI) OptimizeStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[api] failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	var req OptimizeRequest
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	if err := conn.ReadJSON(&req); err != nil {
		writeWSError(conn, nil, "invalid optimize request: "+err.Error())
		return
	}

	config := req.toConfig()
	if err := config.Validate(); err != nil {
		writeWSError(conn, nil, err.Error())
		return
	}

	guests, err := p.Guests.GetAll()
	if err != nil {
		writeWSError(conn, nil, err.Error())
		return
	}
	if p.MaxPoolSize > 0 && len(guests) > p.MaxPoolSize {
		writeWSError(conn, nil, fmt.Sprintf("guest pool size %d exceeds the configured limit of %d", len(guests), p.MaxPoolSize))
		return
	}
	catalog, err := p.Items.GetAll()
	if err != nil {
		writeWSError(conn, nil, err.Error())
		return
	}

	timeout := defaultOptimizeTimeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	// Writes come from worker goroutines via Progress, so they share one
	// mutex with the final result frame.
	var writeMu sync.Mutex

	opt := optimizer.New(guests, catalog)
	opt.Progress = func(done, total int64) {
		if done%progressEvery != 0 && done != total {
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(progressMessage{Type: "progress", Evaluated: done, Total: total}); err != nil {
			log.Printf("[api] websocket progress write failed: %v", err)
		}
	}

	ranked, err := opt.OptimizeRanked(ctx, config)
	if err != nil {
		writeWSError(conn, &writeMu, err.Error())
		return
	}

	p.mu.Lock()
	p.lastRun = ranked
	p.mu.Unlock()

	result := ranked
	if req.TopN > 0 {
		result = optimizer.TopN(ranked, req.TopN)
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(resultMessage{
		Type:            "result",
		Recommendations: result,
		Stats:           optimizer.Statistics(ranked),
	}); err != nil {
		log.Printf("[api] websocket result write failed: %v", err)
	}
}

func writeWSError(conn *websocket.Conn, mu *sync.Mutex, message string) {
	if mu != nil {
		mu.Lock()
		defer mu.Unlock()
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(resultMessage{Type: "error", Error: message}); err != nil {
		log.Printf("[api] websocket error write failed: %v", err)
	}
}
