// RFID Quiz
//
// A single shared quiz session: the server holds a queue of items (letters,
// numbers, or shapes), a scanner posts tag UIDs to /scan, and every connected
// display is told over a websocket whether the scan matched the expected item.
//
// Features:
// - One global session; starting a new game discards the previous one
// - Sequential or uniformly shuffled item order
// - Last five finished games persisted to sqlite and shown on the display
// - Displays connect to /ws and receive a state snapshot immediately
// - In-browser QR button to open the display on a phone, backed by go-qrcode

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "embed"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Client is one connected display.
type Client struct {
	conn *websocket.Conn
	send chan Update
}

// Hub fans session updates out to every connected display. All hub state is
// owned by the run loop; handlers only touch the channels.
type Hub struct {
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	events   chan Update
}

func newHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		events:   make(chan Update),
	}
}

func (h *Hub) run(cfg *Config, game *Game) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

			// A display joining mid-session still needs something to render.
			c.send <- game.Snapshot()

			logf(cfg, "GAMES: Display connected (%d total)", len(h.clients))

		case c := <-h.unreg:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

			logf(cfg, "GAMES: Display disconnected (%d total)", len(h.clients))

		case update := <-h.events:
			for client := range h.clients {
				select {
				case client.send <- update:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// broadcast queues updates for delivery in order. Delivery is best-effort;
// a display that cannot keep up is dropped rather than waited on.
func (h *Hub) broadcast(updates []Update) {
	for _, update := range updates {
		h.events <- update
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan Update, 8),
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

// readPump discards anything a display sends; the socket is one-way. It
// exists to notice the disconnect.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for update := range c.send {
		if err := c.conn.WriteJSON(update); err != nil {
			return
		}
	}
}

// StartRequest is the /start payload. Both fields tolerate unknown values.
type StartRequest struct {
	Category string `json:"category"`
	Mode     string `json:"mode"`
}

// ScanRequest is the /scan payload sent by the tag reader.
type ScanRequest struct {
	UID string `json:"uid"`
}

func writeAck(cfg *Config, w http.ResponseWriter, errs chan<- error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)

	if _, err := w.Write([]byte(`{"ok":true}` + "\n")); err != nil {
		errs <- err
	}
}

func serveStartGame(cfg *Config, game *Game, hub *Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		var req StartRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		hub.broadcast(game.Start(req.Category, req.Mode))

		writeAck(cfg, w, errs)

		logf(cfg, "SERVE: Start request from %s in %s",
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveScan(cfg *Config, game *Game, hub *Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		var req ScanRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		hub.broadcast(game.Scan(req.UID))

		writeAck(cfg, w, errs)

		logf(cfg, "SERVE: Scan %q from %s in %s",
			req.UID,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHistory(cfg *Config, store *HistoryStore, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		records, err := store.List()
		if err != nil {
			errs <- err
			http.Error(w, "history unavailable", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(records); err != nil {
			errs <- err
		}
	}
}

// qrHandler renders a PNG QR code for the display URL, so a phone or tablet
// can be pointed at the quiz screen.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at .../qr; strip the suffix to get the display URL.
	path := strings.TrimSuffix(r.URL.Path, "qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Embedded display client ----

//go:embed quiz/index.html
var indexHTML []byte

//go:embed quiz/app.css
var quizCSS []byte

//go:embed quiz/app.js
var quizJS []byte

func staticHandler(cfg *Config, contentType string, data []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, _ = w.Write(data)
	}
}

// registerQuizGame sets up the game and its routes:
//   - /            → HTML display client
//   - /ws          → websocket feed of session updates
//   - /start       → POST, start a new session
//   - /scan        → POST, judge a scanned tag UID
//   - /history     → GET, last five finished games
//   - /qr          → PNG QR code for the display URL
//
// The returned store must be closed on shutdown.
func registerQuizGame(cfg *Config, mux *httprouter.Router, errs chan<- error) (*HistoryStore, error) {
	store, err := openHistory(cfg.historyPath)
	if err != nil {
		return nil, err
	}

	game := newGame(cfg, store)

	hub := newHub()
	go hub.run(cfg, game)

	mux.GET(cfg.prefix+"/", staticHandler(cfg, "text/html; charset=utf-8", indexHTML))

	mux.GET(cfg.prefix+"/assets/quiz/app.css", staticHandler(cfg, "text/css; charset=utf-8", quizCSS))
	mux.GET(cfg.prefix+"/assets/quiz/app.js", staticHandler(cfg, "text/javascript; charset=utf-8", quizJS))

	mux.GET(cfg.prefix+"/ws", serveWS(hub))

	mux.POST(cfg.prefix+"/start", serveStartGame(cfg, game, hub, errs))
	mux.POST(cfg.prefix+"/scan", serveScan(cfg, game, hub, errs))

	mux.GET(cfg.prefix+"/history", serveHistory(cfg, store, errs))

	mux.GET(cfg.prefix+"/qr", qrHandler)

	return store, nil
}
