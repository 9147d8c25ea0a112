package httpserver

import "net/http"

func (s *Server) handleStreamTopic(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	userID := s.resolveUserID(r)
	s.stream.Handler.ServeTopic(w, r, topic, userID)
}

func (s *Server) handleStreamUser(w http.ResponseWriter, r *http.Request) {
	s.stream.Handler.ServeUser(w, r, r.PathValue("user_id"))
}
