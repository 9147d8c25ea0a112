package wsadapter

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"launchpad/contexts/listing-launchpad/stream-service/application/hub"
	"launchpad/contexts/listing-launchpad/stream-service/domain/entities"
	"launchpad/internal/shared/events"
)

// Handler upgrades HTTP requests into hub sessions. One endpoint per topic,
// plus a per-user endpoint for direct notifications.
type Handler struct {
	Hub        *hub.Hub
	BufferSize int
	Logger     *slog.Logger

	upgrader websocket.Upgrader
}

func NewHandler(h *hub.Hub, bufferSize int, logger *slog.Logger) *Handler {
	return &Handler{
		Hub:        h,
		BufferSize: bufferSize,
		Logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeTopic attaches the caller to a broadcast topic. The optional userID
// additionally binds the session for direct sends.
func (h *Handler) ServeTopic(w http.ResponseWriter, r *http.Request, topic string, userID string) {
	if !entities.ValidTopic(topic) {
		http.Error(w, "unknown topic", http.StatusNotFound)
		return
	}
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logUpgradeFailure(err)
		return
	}
	session := NewSession(socket, h.Hub, h.BufferSize, h.Logger)
	if err := h.Hub.Subscribe(topic, "", session); err != nil {
		_ = session.Close()
		return
	}
	if userID != "" {
		h.Hub.RegisterUser(userID, session)
	}
	h.logAttached(session.ID(), topic, userID)
	session.Run()
}

// ServeUser attaches the caller to its personal stream: the notifications
// topic plus direct sends addressed to the user.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request, userID string) {
	if userID == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logUpgradeFailure(err)
		return
	}
	session := NewSession(socket, h.Hub, h.BufferSize, h.Logger)
	if err := h.Hub.Subscribe(events.TopicNotifications, "", session); err != nil {
		_ = session.Close()
		return
	}
	h.Hub.RegisterUser(userID, session)
	h.logAttached(session.ID(), events.TopicNotifications, userID)
	session.Run()
}

func (h *Handler) logAttached(connectionID string, topic string, userID string) {
	if h.Logger == nil {
		return
	}
	h.Logger.Info("websocket session attached",
		"event", "stream_session_attached",
		"module", "listing-launchpad/stream-service",
		"layer", "adapters",
		"connection_id", connectionID,
		"topic", topic,
		"user_id", userID,
	)
}

func (h *Handler) logUpgradeFailure(err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.Warn("websocket upgrade failed",
		"event", "stream_upgrade_failed",
		"module", "listing-launchpad/stream-service",
		"layer", "adapters",
		"error", err.Error(),
	)
}
