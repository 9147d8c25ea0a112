package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	launchpadservice "launchpad/contexts/listing-launchpad/launchpad-service"
	streamservice "launchpad/contexts/listing-launchpad/stream-service"
	_ "launchpad/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	jwtSecret []byte
	launchpad launchpadservice.Module
	stream    streamservice.Module

	httpServer *http.Server
}

func New(
	launchpadModule launchpadservice.Module,
	streamModule streamservice.Module,
	jwtSecret string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		jwtSecret: []byte(jwtSecret),
		launchpad: launchpadModule,
		stream:    streamModule,
	}
	s.registerRoutes()
	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/launchpad/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("GET /v1/launchpad/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /v1/launchpad/proposals/{proposal_id}", s.handleProposalStatus)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/submit", s.handleSubmitProposal)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/vote", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/close-voting", s.handleCloseVoting)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/start-auction", s.handleStartAuction)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/bids", s.handlePlaceBid)
	s.mux.HandleFunc("GET /v1/launchpad/proposals/{proposal_id}/allocations", s.handleListAllocations)
	s.mux.HandleFunc("POST /v1/launchpad/proposals/{proposal_id}/close-auction", s.handleCloseAuction)

	s.mux.HandleFunc("GET /ws/user/{user_id}", s.handleStreamUser)
	s.mux.HandleFunc("GET /ws/{topic}", s.handleStreamTopic)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
