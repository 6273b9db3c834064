// Package identity provides anonymous per-device identity primitives.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AnonCookieName         = "mentorlabs_anon_id"
	ConversationHeaderName = "X-MentorLabs-Conversation-ID"
	anonCookieMaxAge       = 30 * 24 * time.Hour
)

type contextKey int

const (
	userIDKey contextKey = iota
	conversationIDKey
)

var (
	anonIDPattern         = regexp.MustCompile(`^anon_[a-f0-9]{32}$`)
	conversationIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)
)

// UserIDFromContext extracts the anonymous user ID from the request context.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// ConversationIDFromContext extracts the conversation ID from the request
// context. Every request carries one; the middleware mints a fresh UUID when
// the client did not supply its own.
func ConversationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(conversationIDKey).(string); ok {
		return v
	}
	return ""
}

func generateAnonID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate anonymous id: %w", err)
	}
	return "anon_" + hex.EncodeToString(buf), nil
}

func isValidAnonID(id string) bool {
	return anonIDPattern.MatchString(id)
}

// conversationIDFromRequest returns the client-supplied conversation ID, or
// a freshly generated one. Conversation IDs are scoped per conversation so
// the upstream inference service can tell separate threads apart.
func conversationIDFromRequest(r *http.Request) string {
	cid := r.Header.Get(ConversationHeaderName)
	if cid == "" {
		cid = r.URL.Query().Get("conversation_id")
	}
	cid = strings.TrimSpace(cid)
	if cid == "" || !conversationIDPattern.MatchString(cid) {
		return uuid.NewString()
	}
	return cid
}

func getOrCreateAnonID(w http.ResponseWriter, r *http.Request, isDev bool) (string, error) {
	if c, err := r.Cookie(AnonCookieName); err == nil && isValidAnonID(c.Value) {
		setAnonCookie(w, c.Value, isDev)
		return c.Value, nil
	}

	id, err := generateAnonID()
	if err != nil {
		return "", err
	}
	setAnonCookie(w, id, isDev)
	return id, nil
}

func setAnonCookie(w http.ResponseWriter, id string, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AnonCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(anonCookieMaxAge.Seconds()),
		Expires:  time.Now().Add(anonCookieMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

// Middleware injects anonymous per-device identity and a per-request
// conversation ID.
func Middleware(isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := getOrCreateAnonID(w, r, isDev)
			if err != nil {
				http.Error(w, `{"error":"failed to establish anonymous identity"}`, http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, conversationIDKey, conversationIDFromRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
