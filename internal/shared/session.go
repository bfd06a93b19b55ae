package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FlashMessage represents a one-time notification stored in session.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionManager orchestrates cookie based sessions backed by Redis. The
// storefront itself is stateless for anonymous visitors; sessions carry the
// admin identity, CSRF token and flash messages.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
}

// Session holds per-request session data.
type Session struct {
	ID        string
	values    map[string]string
	userID    string
	flashes   []FlashMessage
	manager   *SessionManager
	isNew     bool
	dirty     bool
	destroyed bool
}

type sessionPayload struct {
	Values  map[string]string `json:"values"`
	UserID  string            `json:"user_id"`
	Flashes []FlashMessage    `json:"flashes"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		secret:     []byte(secret),
	}
}

// Load loads or creates a session for the request.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return sm.newSession(), nil
		}
		return nil, err
	}

	payload, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sess := sm.newSession()
			sess.ID = cookie.Value
			sess.isNew = true
			return sess, nil
		}
		return nil, err
	}

	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}

	sess := sm.newSession()
	sess.ID = cookie.Value
	sess.values = stored.Values
	sess.userID = stored.UserID
	sess.flashes = stored.Flashes
	sess.isNew = false
	return sess, nil
}

// Commit persists the session and writes cookie headers as needed.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *Session) error {
	if sess == nil {
		return nil
	}

	if sess.destroyed {
		if err := sm.client.Del(ctx, sm.redisKey(sess.ID)).Err(); err != nil {
			return err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sm.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   sm.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	if !sess.dirty && !sess.isNew {
		// Refresh TTL on read so active sessions do not silently expire.
		return sm.client.Expire(ctx, sm.redisKey(sess.ID), sm.ttl).Err()
	}

	payload, err := json.Marshal(sessionPayload{
		Values:  sess.values,
		UserID:  sess.userID,
		Flashes: sess.flashes,
	})
	if err != nil {
		return err
	}
	if err := sm.client.Set(ctx, sm.redisKey(sess.ID), payload, sm.ttl).Err(); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(sm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (sm *SessionManager) newSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		values:  map[string]string{},
		manager: sm,
		isNew:   true,
	}
}

func (sm *SessionManager) redisKey(id string) string {
	return "storefront:session:" + id
}

// CookieName returns the configured session cookie name.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// Get returns a stored session value.
func (s *Session) Get(key string) string {
	if s == nil {
		return ""
	}
	return s.values[key]
}

// Set stores a session value.
func (s *Session) Set(key, value string) {
	if s == nil {
		return
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	s.dirty = true
}

// User returns the authenticated admin identity, empty when anonymous.
func (s *Session) User() string {
	if s == nil {
		return ""
	}
	return s.userID
}

// SetUser marks the session authenticated.
func (s *Session) SetUser(id string) {
	if s == nil {
		return
	}
	s.userID = id
	s.dirty = true
}

// Flash queues a one-time message.
func (s *Session) Flash(kind, message string) {
	if s == nil {
		return
	}
	s.flashes = append(s.flashes, FlashMessage{Kind: kind, Message: message})
	s.dirty = true
}

// PopFlash removes and returns the oldest flash message, nil when none.
func (s *Session) PopFlash() *FlashMessage {
	if s == nil || len(s.flashes) == 0 {
		return nil
	}
	flash := s.flashes[0]
	s.flashes = s.flashes[1:]
	s.dirty = true
	return &flash
}

// Destroy deletes the session on commit.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.destroyed = true
	s.dirty = true
}
