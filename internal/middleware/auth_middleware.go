package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anikettiwarime/VideoTube/pkg/jwt"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AccessTokenCookie is the cookie the auth handler sets on login; the
// middleware falls back to it when no Authorization header is present.
const AccessTokenCookie = "accessToken"

func AuthMiddleware(accessSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				response.Unauthorized(w, "Missing access token")
				return
			}

			claims, err := jwt.ValidateAccessToken(token, accessSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
