package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Event is a yard lifecycle notification pushed to connected display
// boards (gate screens showing trucks entering and settling).
type Event struct {
	Type        string    `json:"type"` // entry_created | exit_settled | transaction_reversed
	EntryNumber string    `json:"entry_number,omitempty"`
	TruckNumber string    `json:"truck_number,omitempty"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// Server runs the yard board on its own port: a JSON stats endpoint for the
// ops dashboard and a websocket feed of yard events.
type Server struct {
	db         *pgxpool.Pool
	port       int
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
	startedAt  time.Time
}

var upgrader = websocket.Upgrader{
	// Display boards live on the yard LAN; origin checks stay open.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{
		db:        db,
		port:      port,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
		startedAt: time.Now(),
	}
}

// Publish queues an event for all connected boards. Never blocks the
// request path: when the buffer is full the event is dropped.
func (s *Server) Publish(event Event) {
	event.Timestamp = time.Now()
	select {
	case s.broadcast <- event:
	default:
	}
}

func (s *Server) Start() {
	go s.run()

	r := mux.NewRouter()
	r.HandleFunc("/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/ws", s.handleWS).Methods("GET")

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Yard board running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] Server stopped: %v", err)
	}
}

func (s *Server) run() {
	for event := range s.broadcast {
		s.clientsMux.Lock()
		for conn := range s.clients {
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(s.clients, conn)
			}
		}
		s.clientsMux.Unlock()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Monitoring] Websocket upgrade failed: %v", err)
		return
	}

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	// Reader loop only to detect disconnects; boards never send data.
	go func() {
		defer func() {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

type stats struct {
	DatabaseStatus string  `json:"database_status"`
	ResponseTimeMS int64   `json:"response_time_ms"`
	PendingEntries int     `json:"pending_entries"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskPercent    float64 `json:"disk_percent"`
	Uptime         string  `json:"uptime"`
	Boards         int     `json:"connected_boards"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	out := stats{
		DatabaseStatus: "healthy",
		Uptime:         time.Since(s.startedAt).Round(time.Second).String(),
	}

	start := time.Now()
	if err := s.db.Ping(ctx); err != nil {
		out.DatabaseStatus = "unhealthy"
	}
	out.ResponseTimeMS = time.Since(start).Milliseconds()

	if out.DatabaseStatus == "healthy" {
		s.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM entries WHERE completed=FALSE`).Scan(&out.PendingEntries)
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		out.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		out.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		out.DiskPercent = du.UsedPercent
	}

	s.clientsMux.Lock()
	out.Boards = len(s.clients)
	s.clientsMux.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
