package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	launchpaderrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	launchpadhttp "launchpad/contexts/listing-launchpad/launchpad-service/transport/http"
)

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLaunchpadError(w, http.StatusUnauthorized, "missing_user", "a Bearer token or X-User-Id header is required")
		return
	}

	var req launchpadhttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLaunchpadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.launchpad.Handler.CreateProposalHandler(r.Context(), userID, req)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseIntParam(query.Get("page"))
	pageSize := parseIntParam(query.Get("page_size"))

	resp, err := s.launchpad.Handler.ListProposalsHandler(r.Context(), query.Get("status"), page, pageSize)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.launchpad.Handler.ProposalStatusHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	var req launchpadhttp.SubmitProposalRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeLaunchpadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.launchpad.Handler.SubmitProposalHandler(r.Context(), r.PathValue("proposal_id"), req)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLaunchpadError(w, http.StatusUnauthorized, "missing_user", "a Bearer token or X-User-Id header is required")
		return
	}

	var req launchpadhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLaunchpadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.launchpad.Handler.CastVoteHandler(r.Context(), r.PathValue("proposal_id"), userID, req)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseVoting(w http.ResponseWriter, r *http.Request) {
	resp, err := s.launchpad.Handler.CloseVotingHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartAuction(w http.ResponseWriter, r *http.Request) {
	var req launchpadhttp.StartAuctionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeLaunchpadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.launchpad.Handler.StartAuctionHandler(r.Context(), r.PathValue("proposal_id"), req)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLaunchpadError(w, http.StatusUnauthorized, "missing_user", "a Bearer token or X-User-Id header is required")
		return
	}

	var req launchpadhttp.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLaunchpadError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.launchpad.Handler.PlaceBidHandler(r.Context(), r.PathValue("proposal_id"), userID, req)
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllocations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.launchpad.Handler.ListAllocationsHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseAuction(w http.ResponseWriter, r *http.Request) {
	resp, err := s.launchpad.Handler.CloseAuctionHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeLaunchpadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLaunchpadDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, launchpaderrors.ErrProposalNotFound):
		writeLaunchpadError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, launchpaderrors.ErrInvalidInput):
		writeLaunchpadError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, launchpaderrors.ErrInvalidTransition):
		writeLaunchpadError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, launchpaderrors.ErrVotingStillOpen):
		writeLaunchpadError(w, http.StatusConflict, "voting_still_open", err.Error())
	case errors.Is(err, launchpaderrors.ErrInvalidState):
		writeLaunchpadError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, launchpaderrors.ErrDuplicateVote):
		writeLaunchpadError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, launchpaderrors.ErrDeadlinePassed):
		writeLaunchpadError(w, http.StatusGone, "voting_deadline_passed", err.Error())
	case errors.Is(err, launchpaderrors.ErrPriceTooLow):
		writeLaunchpadError(w, http.StatusUnprocessableEntity, "price_too_low", err.Error())
	case errors.Is(err, launchpaderrors.ErrSoldOut):
		writeLaunchpadError(w, http.StatusUnprocessableEntity, "sold_out", err.Error())
	case errors.Is(err, launchpaderrors.ErrConflict):
		writeLaunchpadError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, launchpaderrors.ErrExternalService):
		writeLaunchpadError(w, http.StatusBadGateway, "external_service", err.Error())
	default:
		writeLaunchpadError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLaunchpadError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, launchpadhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
