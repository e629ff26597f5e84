package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "shop-session"

	userIDSessionKey     = "userID"
	sessionKeySessionKey = "sessionKey"
)

type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	GetSessionKey(r *http.Request) string
	GetOrCreateSessionKey(w http.ResponseWriter, r *http.Request) (string, error)
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store  *sessions.CookieStore
	logger *zap.Logger
}

func NewCookieSessionStore(logger *zap.Logger, secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(14 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store, logger: logger}
}

// getSession never fails: a cookie that cannot be decoded (rotated keys,
// tampering) yields a fresh session.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		c.logger.Debug("discarding undecodable session cookie", zap.Error(err))
	}
	return session
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	userID, _ := c.getSession(r).Values[userIDSessionKey].(string)
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetSessionKey(r *http.Request) string {
	key, _ := c.getSession(r).Values[sessionKeySessionKey].(string)
	return key
}

// GetOrCreateSessionKey returns the visitor's anonymous key, issuing and
// saving a new one first if the session has none yet.
func (c *CookieSessionStore) GetOrCreateSessionKey(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	if key, ok := session.Values[sessionKeySessionKey].(string); ok && key != "" {
		return key, nil
	}

	key := uuid.New().String()
	session.Values[sessionKeySessionKey] = key
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	// Later reads in the same request go through r, which still carries the
	// old cookie; the registry caches the saved session for them.
	return key, nil
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// RequestSession binds the store to one request so it can be passed where
// only a session key source is needed.
type RequestSession struct {
	store SessionStore
	w     http.ResponseWriter
	r     *http.Request
}

func ForRequest(store SessionStore, w http.ResponseWriter, r *http.Request) *RequestSession {
	return &RequestSession{store: store, w: w, r: r}
}

func (s *RequestSession) SessionKey() (string, error) {
	return s.store.GetOrCreateSessionKey(s.w, s.r)
}
