// Smoke client for the websocket stream: creates a session over the REST
// API, connects to /ws, starts the game and prints a few snapshots.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type newGameResponse struct {
	Token string   `json:"token"`
	Snake [][2]int `json:"snake"`
	Food  [2]int   `json:"food"`
	Score int      `json:"score"`
	State string   `json:"state"`
}

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("http://127.0.0.1:%s", port)

	res, err := http.Post(base+"/api/v1/game/new", "application/json", bytes.NewReader(nil))
	if err != nil {
		log.Fatalf("create game: %v", err)
	}
	defer res.Body.Close()

	var created newGameResponse
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		log.Fatalf("decode create response: %v", err)
	}
	log.Printf("session created: state=%s snake=%v food=%v", created.State, created.Snake, created.Food)

	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, created.Token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "start"}); err != nil {
		log.Fatalf("send start: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for i := 0; i < 12 && time.Now().Before(deadline); i++ {
		conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		log.Printf("frame: %s", msg)
	}

	log.Println("ws smoke finished")
}
