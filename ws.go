package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// How often connected clients receive a fresh status frame.
const STATUS_INTERVAL = time.Second / 4

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StatusStream pushes the configured motor's status snapshot to the
// client at a fixed interval until the connection drops. Clients send
// nothing; the read loop only exists to notice the close.
func (a *API) StatusStream(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer c.Close()

	done := make(chan struct{})
	go func(c *websocket.Conn, done chan struct{}) {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}(c, done)

	ticker := time.NewTicker(STATUS_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snap, err := a.ctrl.MotorStatus(a.config.Motor.Name)
			if err != nil {
				// motor not created yet; send an empty snapshot so the
				// client still sees the name/type it is waiting on
				snap.Name = a.config.Motor.Name
				snap.Type = a.config.Motor.Type
			}
			if err := c.WriteJSON(snap); err != nil {
				log.Println("write:", err)
				return
			}
		}
	}
}
