package streamservice

import (
	"log/slog"

	wsadapter "launchpad/contexts/listing-launchpad/stream-service/adapters/websocket"
	"launchpad/contexts/listing-launchpad/stream-service/application/hub"
)

type Module struct {
	Hub     *hub.Hub
	Handler *wsadapter.Handler
}

type Dependencies struct {
	SendBuffer int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	broadcastHub := hub.New(deps.Logger)
	return Module{
		Hub:     broadcastHub,
		Handler: wsadapter.NewHandler(broadcastHub, deps.SendBuffer, deps.Logger),
	}
}
