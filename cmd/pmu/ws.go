package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// resultFeed pushes every published result to connected websocket
// clients. A new client first gets the current result, if any.
type resultFeed struct {
	up websocket.Upgrader

	mx      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	current []byte
}

func newResultFeed() *resultFeed {
	return &resultFeed{
		up: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (f *resultFeed) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ws, err := f.up.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade: %+v", err)
		return
	}

	f.mx.Lock()
	if f.current != nil && !f.write(ws, f.current) {
		f.mx.Unlock()
		return
	}
	f.conns[ws] = struct{}{}
	f.mx.Unlock()

	// clients only listen; reading detects the close
	for {
		_, _, err = ws.ReadMessage()
		if err != nil {
			break
		}
	}

	f.mx.Lock()
	delete(f.conns, ws)
	f.mx.Unlock()
	ws.Close()
}

// write must be called with mx held.
func (f *resultFeed) write(ws *websocket.Conn, data []byte) bool {
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	err := ws.WriteMessage(websocket.TextMessage, data)
	if err != nil {
		log.Printf("ERROR: websocket write: %+v", err)
		delete(f.conns, ws)
		ws.Close()
		return false
	}
	return true
}

func (f *resultFeed) send(data []byte) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.current = data
	for ws := range f.conns {
		f.write(ws, data)
	}
}

func (f *resultFeed) close() {
	f.mx.Lock()
	defer f.mx.Unlock()

	for ws := range f.conns {
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait),
		)
		ws.Close()
		delete(f.conns, ws)
	}
}
