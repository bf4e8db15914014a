package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"medibook/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS subscribes a client to availability changes for one date.
// GET /ws/available?date=<string>
func HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = defaultDate
	}

	// the upgrader has already written an error response on failure
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	mu.Lock()
	subscribers[date] = append(subscribers[date], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[date]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[date] = newList
	mu.Unlock()

	conn.Close()
}

type wsMessage struct {
	Type          string `json:"type"`
	Date          string `json:"date"`
	TreatmentName string `json:"treatmentName"`
	Slot          string `json:"slot"`
}

// BroadcastUpdate tells every client watching the event's date to refresh
// its availability view.
func BroadcastUpdate(ev rdx.BookingEvent) {
	msg := wsMessage{
		Type:          "update",
		Date:          ev.Date,
		TreatmentName: ev.TreatmentName,
		Slot:          ev.Slot,
	}
	data, _ := json.Marshal(msg)
	broadcast(ev.Date, data)
}

func broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[key] = newList
}
