package httpserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// resolveUserID extracts the caller identity. A valid Bearer token wins;
// the X-User-Id header is the fallback for trusted internal callers.
func (s *Server) resolveUserID(r *http.Request) string {
	bearer := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(bearer, "Bearer ") && len(s.jwtSecret) > 0 {
		if userID := s.userFromToken(bearer[7:]); userID != "" {
			return userID
		}
	}
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func (s *Server) userFromToken(tokenStr string) string {
	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return ""
}
