// Launchpad Project Launch Game
//
// A server-authoritative multiplayer card game for 2-8 players. Each player
// races to collect exactly 10 Progress cards and declare a launch; Action
// cards disrupt opponents, Bug cards are set face-down as traps, and
// Solution cards counter effects during a timed reaction window.
//
// Features:
// - Single WebSocket endpoint at /ws; rooms created and joined by message
// - Rooms keyed by 5-character codes from an unambiguous alphabet
// - One goroutine per room serializes every intent against canonical state
// - Public room snapshots broadcast to all members; hands sent privately
// - Launch declarations resolved by a deferred timer validated against the
//   pending record, so stale timers are no-ops
// - Players identified by cookie (playerID); a second tab shares the seat,
//   and closing the last connection removes the player from the room
// - Rooms removed when the last player leaves, and reaped when idle
// - In-browser QR button to share the room join URL, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dii-lab/launchpad/games/launch"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// ClientMessage covers every intent a client can send.
type ClientMessage struct {
	Type     string `json:"type"`                // intent name
	Name     string `json:"name,omitempty"`      // create_room / join_room
	Code     string `json:"code,omitempty"`      // join_room
	Role     string `json:"role,omitempty"`      // choose_role
	Ready    bool   `json:"ready,omitempty"`     // set_ready
	CardID   string `json:"card_id,omitempty"`   // play_card / reaction
	TargetID string `json:"target_id,omitempty"` // play_card / po_swap / challenge
	AsTrap   bool   `json:"as_trap,omitempty"`   // play_card
}

// JoinedMessage confirms room membership to one client.
type JoinedMessage struct {
	Type string `json:"type"` // "joined"
	Room string `json:"room"`
}

// RoomStateMessage is the public snapshot broadcast to all room members.
type RoomStateMessage struct {
	Type string `json:"type"` // "room_state"
	launch.Snapshot
}

// HandStateMessage is sent only to the owning connection.
type HandStateMessage struct {
	Type string `json:"type"` // "hand_state"
	launch.HandView
}

// ErrorMessage is a single-string, non-fatal notification.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string

	// hub is set once the client has created or joined a room. Only the
	// client's readPump goroutine touches it.
	hub *Hub
}

type joinRequest struct {
	client *Client
	name   string
}

type intentRequest struct {
	client *Client
	msg    ClientMessage
}

// Hub owns one room. Its run loop is the only goroutine that touches the
// room, which gives the engine the per-room serialization it requires.
type Hub struct {
	code string
	room *launch.Room

	clients  map[*Client]bool
	joins    chan joinRequest
	unreg    chan *Client
	intents  chan intentRequest
	resolves chan string // declaring player ids from launch timers
	shutdown chan struct{}
	done     chan struct{}

	mu         sync.RWMutex
	lastActive time.Time
}

func newHub(code string, room *launch.Room) *Hub {
	return &Hub{
		code:       code,
		room:       room,
		clients:    make(map[*Client]bool),
		joins:      make(chan joinRequest),
		unreg:      make(chan *Client),
		intents:    make(chan intentRequest, 8),
		resolves:   make(chan string, 4),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
}

func (h *Hub) touch() {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()
}

func (h *Hub) run(cfg *Config, rm *RoomManager) {
	for {
		select {
		case jr := <-h.joins:
			h.touch()

			c := jr.client
			h.clients[c] = true

			// Reconnecting cookies are already members.
			if h.room.Player(c.playerID) == nil {
				p := h.room.AddPlayer(c.playerID, jr.name)
				logf(cfg, "GAMES: Player %q joined room %s", p.Name, h.code)
			}

			h.sendTo(c, JoinedMessage{
				Type: "joined",
				Room: h.code,
			})
			h.broadcastState()

		case c := <-h.unreg:
			h.touch()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

			if h.dropPlayer(cfg, c.playerID) {
				rm.remove(h.code)
				h.closeAll()
				close(h.done)
				return
			}
			h.broadcastState()

		case req := <-h.intents:
			h.touch()

			if req.msg.Type == "leave_room" {
				// Keep the send channel open; the socket may
				// create or join another room.
				delete(h.clients, req.client)

				if h.dropPlayer(cfg, req.client.playerID) {
					rm.remove(h.code)
					h.closeAll()
					close(h.done)
					return
				}
				h.broadcastState()
				continue
			}

			h.handleIntent(cfg, rm, req)

		case playerID := <-h.resolves:
			if h.room.ResolveLaunch(playerID) {
				logf(cfg, "GAMES: Room %s won by %s", h.code, playerID)
			}
			h.broadcastState()

		case <-h.shutdown:
			h.closeAll()
			close(h.done)
			return
		}
	}
}

// dropPlayer removes a player from the room once no connection with that
// playerID remains, and reports whether the room is now empty.
func (h *Hub) dropPlayer(cfg *Config, playerID string) bool {
	if playerID == "" {
		return false
	}

	for c := range h.clients {
		if c.playerID == playerID {
			return false
		}
	}

	h.room.RemovePlayer(playerID)
	logf(cfg, "GAMES: Player %s left room %s", playerID, h.code)

	return h.room.Empty()
}

// handleIntent runs one game intent to completion, including any trap
// cascades, before the loop accepts the next one.
func (h *Hub) handleIntent(cfg *Config, rm *RoomManager, req intentRequest) {
	c := req.client
	msg := req.msg
	id := c.playerID

	var err error

	switch msg.Type {
	case "choose_role":
		var role launch.Role
		role, err = launch.ParseRole(msg.Role)
		if err == nil {
			err = h.room.ChooseRole(id, role)
		}

	case "set_ready":
		err = h.room.SetReady(id, msg.Ready)

	case "start_game":
		err = h.room.Start(id)
		if err == nil {
			logf(cfg, "GAMES: Room %s started with %d players", h.code, len(h.room.Players))
		}

	case "draw":
		err = h.room.Draw(id)

	case "play_card":
		err = h.room.PlayCard(id, msg.CardID, msg.TargetID, msg.AsTrap)

	case "po_swap":
		err = h.room.PoSwap(id, msg.TargetID)

	case "challenge":
		err = h.room.Challenge(id, msg.TargetID)

	case "reaction":
		err = h.room.React(id, msg.CardID)

	case "declare_launch":
		var endsAt time.Time
		var opened bool
		endsAt, opened, err = h.room.DeclareLaunch(id)
		if opened {
			h.scheduleResolve(rm, id, endsAt)
		}

	default:
		// ignore unknown types
		return
	}

	if err != nil {
		// Out-of-turn attempts are dropped without a notification.
		if !errors.Is(err, launch.ErrNotCurrentPlayer) {
			h.sendTo(c, ErrorMessage{
				Type:    "error",
				Message: err.Error(),
			})
		}
		return
	}

	h.broadcastState()
}

// scheduleResolve arms the reaction-window timer. The engine re-validates
// the pending record, so a timer that outlives the declaration (or the
// room) does nothing.
func (h *Hub) scheduleResolve(rm *RoomManager, playerID string, endsAt time.Time) {
	time.AfterFunc(time.Until(endsAt), func() {
		if rm.lookup(h.code) != h {
			return
		}
		select {
		case h.resolves <- playerID:
		case <-h.done:
		}
	})
}

// broadcastState sends the public snapshot to every member and each
// member's private hand to them alone. Clients evicted by the first send
// are skipped for the second.
func (h *Hub) broadcastState() {
	snap := h.room.Snapshot()

	for c := range h.clients {
		if !h.sendTo(c, RoomStateMessage{
			Type:     "room_state",
			Snapshot: snap,
		}) {
			continue
		}
		h.sendTo(c, HandStateMessage{
			Type:     "hand_state",
			HandView: h.room.HandView(c.playerID),
		})
	}
}

// sendTo queues a message for one client, evicting it when its buffer is
// full. Reports whether the client is still registered afterwards.
func (h *Hub) sendTo(c *Client, msg any) bool {
	if !h.clients[c] {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		delete(h.clients, c)
		close(c.send)
		return false
	}
}

// closeAll disconnects all clients of this hub. Must run on the hub's
// run-loop goroutine.
func (h *Hub) closeAll() {
	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "launchpad_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// RoomManager holds the set of hubs keyed by room code.
type RoomManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
}

func newRoomManager(idleTimeout time.Duration) *RoomManager {
	rm := &RoomManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go rm.reaperLoop()
	}
	return rm
}

func (rm *RoomManager) lookup(code string) *Hub {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	return rm.hubs[code]
}

func (rm *RoomManager) remove(code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	delete(rm.hubs, code)
}

// create builds a new room with the client as host and starts its hub.
func (rm *RoomManager) create(cfg *Config, c *Client, name string) *Hub {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	var code string
	for {
		code = launch.NewCode()
		if _, exists := rm.hubs[code]; !exists {
			break
		}
	}

	room := launch.NewRoom(code, c.playerID, name, launch.WithLaunchWindow(cfg.launchWindow))
	hub := newHub(code, room)
	rm.hubs[code] = hub
	go hub.run(cfg, rm)

	logf(cfg, "ROOMS: Created room %s", code)

	return hub
}

// deliverJoin hands a client to a hub's run loop, unless the hub already
// shut down.
func deliverJoin(hub *Hub, jr joinRequest) bool {
	select {
	case hub.joins <- jr:
		return true
	case <-hub.done:
		return false
	}
}

func deliverIntent(hub *Hub, req intentRequest) bool {
	select {
	case hub.intents <- req:
		return true
	case <-hub.done:
		return false
	}
}

// WebSocket handler: clients connect without a room and send create_room or
// join_room as their first meaningful intent.
func serveWS(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		go client.writePump()
		client.readPump(cfg, rm)
	}
}

func (c *Client) sendError(message string) {
	select {
	case c.send <- ErrorMessage{Type: "error", Message: message}:
	default:
	}
}

// teardown hands the client back to its hub for unregistration. A client
// no hub ever adopted closes its own send channel, releasing writePump.
func (c *Client) teardown() {
	if c.hub == nil {
		close(c.send)
		return
	}

	select {
	case c.hub.unreg <- c:
	case <-c.hub.done:
	}
}

func (c *Client) readPump(cfg *Config, rm *RoomManager) {
	defer func() {
		c.teardown()
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "create_room":
			if c.hub != nil {
				continue
			}
			hub := rm.create(cfg, c, msg.Name)
			if deliverJoin(hub, joinRequest{client: c, name: msg.Name}) {
				c.hub = hub
			}

		case "join_room":
			if c.hub != nil {
				continue
			}
			hub := rm.lookup(strings.ToUpper(msg.Code))
			if hub == nil || !deliverJoin(hub, joinRequest{client: c, name: msg.Name}) {
				c.sendError(launch.ErrRoomNotFound.Error())
				continue
			}
			c.hub = hub

		case "leave_room":
			if c.hub == nil {
				continue
			}
			deliverIntent(c.hub, intentRequest{client: c, msg: msg})
			c.hub = nil

		default:
			if c.hub == nil {
				continue
			}
			deliverIntent(c.hub, intentRequest{client: c, msg: msg})
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// reaperLoop periodically removes hubs idle longer than idleTimeout.
func (rm *RoomManager) reaperLoop() {
	ticker := time.NewTicker(rm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-rm.idleTimeout)

		rm.mu.Lock()
		for code, hub := range rm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(rm.hubs, code)
				close(hub.shutdown)
			}
		}
		rm.mu.Unlock()
	}
}

// QR handler: generates a PNG QR code for the room join URL.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:code/qr; strip trailing "/qr" to get the room URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

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

//go:embed assets/launch/index.html
var indexHTML []byte

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(indexHTML)
	}
}

// registerLaunchGame sets up routes so that:
//   - $path             → HTML client (create/join via form)
//   - $path/:code       → HTML client with the room code prefilled
//   - $path/:code/qr    → PNG QR code for that room URL
//   - /ws               → WebSocket carrying all game intents
func registerLaunchGame(cfg *Config, path string, mux *httprouter.Router) {
	rm := newRoomManager(cfg.sessionTimeout)

	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	mux.GET(cfg.prefix+path+"/:code", getIndexHandler(cfg))

	mux.GET(cfg.prefix+path+"/:code/qr", qrHandler)

	mux.GET(cfg.prefix+"/ws", serveWS(cfg, rm))
}
