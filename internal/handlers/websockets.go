package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"drowsyguard/internal/logger"
	"drowsyguard/internal/services"
	"drowsyguard/internal/services/stream"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const readTimeout = 60 * time.Second

// StreamHandler upgrades the connection and runs the frame-in, result-out
// loop. Each connection gets its own session with a fresh smoothing window;
// frames arriving while inference runs are dropped without a reply.
func StreamHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		defer connection.Close()

		connection.SetReadDeadline(time.Now().Add(readTimeout))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(readTimeout))
			return nil
		})

		m := manager.Metrics()
		m.ActiveSessions.Add(1)
		m.TotalSessions.Add(1)
		defer m.ActiveSessions.Add(-1)

		session := stream.NewSession(manager.NewPipeline())
		defer session.Close()

		logger.Info("Stream client connected: %s", r.RemoteAddr)

		// Results are written from a single goroutine; gorilla allows at
		// most one concurrent writer per connection.
		writeDone := make(chan struct{})
		go func() {
			defer close(writeDone)
			for {
				select {
				case result := <-session.Results():
					if err := connection.WriteJSON(result); err != nil {
						logger.Warning("Stream write error: %v", err)
						return
					}
				case <-session.Done():
					return
				}
			}
		}()

		for {
			_, msg, err := connection.ReadMessage()
			if err != nil {
				logger.Info("Stream client disconnected: %v", err)
				break
			}
			connection.SetReadDeadline(time.Now().Add(readTimeout))

			m.FramesReceived.Add(1)
			if !session.Submit(msg) {
				m.FramesDropped.Add(1)
			}
		}

		session.Close()
		<-writeDone
	}
}
