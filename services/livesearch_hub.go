package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"platewise-backend/models"
	"platewise-backend/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// searchDebounce is the quiet period after the last keystroke before a query
// actually runs.
const searchDebounce = 300 * time.Millisecond

// SearchClient is one live-search websocket connection. Each keystroke frame
// resets the per-connection debounce; only the final frame of a burst fires a
// catalog query.
type SearchClient struct {
	Conn *websocket.Conn

	deb *utils.Debouncer
	mu  sync.Mutex // serializes writes
}

func NewSearchClient(conn *websocket.Conn) *SearchClient {
	return &SearchClient{Conn: conn, deb: utils.NewDebouncer(searchDebounce)}
}

// writeMessage is the only path to the connection; gorilla/websocket allows a
// single concurrent writer, so every frame (results and pings alike) goes
// through the mutex.
func (c *SearchClient) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// WritePing sends a keep-alive ping, serialized with result writes.
func (c *SearchClient) WritePing() error {
	return c.writeMessage(websocket.PingMessage, nil)
}

type searchResultFrame struct {
	Query   string                  `json:"query"`
	Results []models.NormalizedFood `json:"results"`
}

// LiveSearchHub tracks open search connections and answers their debounced
// queries against the upstream catalog.
type LiveSearchHub struct {
	mu      sync.RWMutex
	clients map[*SearchClient]struct{}

	api *FoodAPIService
	log *zap.SugaredLogger
}

func NewLiveSearchHub(api *FoodAPIService, log *zap.SugaredLogger) *LiveSearchHub {
	return &LiveSearchHub{
		clients: make(map[*SearchClient]struct{}),
		api:     api,
		log:     log,
	}
}

func (h *LiveSearchHub) Register(c *SearchClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *LiveSearchHub) Unregister(c *SearchClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.deb.Stop()
	_ = c.Conn.Close()
}

// HandleQuery schedules a debounced search for the latest keystroke frame.
// A late-arriving result for a superseded query is simply written out and
// overwritten by the next one; last write wins.
func (h *LiveSearchHub) HandleQuery(c *SearchClient, query string) {
	c.deb.Call(func() {
		h.runSearch(c, query)
	})
}

func (h *LiveSearchHub) runSearch(c *SearchClient, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raws, err := h.api.FetchFoods(ctx)
	if err != nil {
		h.log.Warnw("live search catalog fetch failed", "error", err)
		raws = nil
	}
	foods := models.NormalizeFoods(raws)
	results := QueryFoods(foods, QueryParams{Text: query})

	msg, err := json.Marshal(searchResultFrame{Query: query, Results: results})
	if err != nil {
		return
	}
	if err := c.writeMessage(websocket.TextMessage, msg); err != nil {
		h.log.Debugw("live search write failed", "error", err)
	}
}
