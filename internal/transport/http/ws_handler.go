package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"quiz-setup-service/internal/app"
	"quiz-setup-service/internal/schedule"
)

// EstimateStreamHandler pushes a freshly computed schedule estimate over a
// websocket every time the stored configuration changes, so the wizard's
// duration display stays current while the organizer edits rounds.
type EstimateStreamHandler struct {
	service  *app.SetupService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewEstimateStreamHandler(service *app.SetupService, log zerolog.Logger) *EstimateStreamHandler {
	return &EstimateStreamHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and streams estimate updates. The break
// strategy is fixed per connection via the strategy query parameter.
func (h *EstimateStreamHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	strategy, err := schedule.ParseBreakStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.service.Store().Subscribe()
	defer cancel()

	send := make(chan outboundMessage[schedule.Estimate], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case cfg, ok := <-updates:
				if !ok {
					return
				}
				est := h.service.EstimateFor(r.Context(), cfg, strategy)
				select {
				case send <- outboundMessage[schedule.Estimate]{Type: "estimate", Payload: est}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// Drain reads until the client hangs up; inbound content is ignored,
	// this endpoint is broadcast-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
