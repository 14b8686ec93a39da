package realtime

import (
	"sync"
)

// Router tracks websocket sessions and the user bound to each one, and
// delivers addressed envelopes to a user's private session. Sessions attach
// anonymous; Bind associates a user once the session authenticates. A user
// has at most one active session: binding a second one replaces the first.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection // sessionID -> connection
	userSessions map[string]string      // userID -> sessionID
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
	}
}

// Attach registers an anonymous session and starts its write loop.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	r.mu.Unlock()

	conn.Start()
}

// Bind associates a user id with an attached session. If the user already
// has a different session it is detached and closed after the swap so each
// user keeps exactly one delivery address.
func (r *Router) Bind(conn *Connection, userID string) {
	var previous *Connection

	r.mu.Lock()
	if _, ok := r.sessions[conn.ID]; !ok {
		r.mu.Unlock()
		return
	}
	if existingID, ok := r.userSessions[userID]; ok && existingID != conn.ID {
		if existing := r.sessions[existingID]; existing != nil {
			previous = existing
			r.detachLocked(existingID)
		}
	}
	conn.userID = userID
	r.userSessions[userID] = conn.ID
	r.mu.Unlock()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// NotifyUser delivers an envelope to the current session of the given user.
// Returns false when the user has no active session or the write failed;
// callers treat delivery as best-effort either way.
func (r *Router) NotifyUser(userID string, env Envelope) bool {
	r.mu.RLock()
	sessionID, ok := r.userSessions[userID]
	if !ok {
		r.mu.RUnlock()
		return false
	}
	conn := r.sessions[sessionID]
	r.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.SendEnvelope(env) == nil
}

// Connected reports whether the user currently has a bound session.
func (r *Router) Connected(userID string) bool {
	r.mu.RLock()
	_, ok := r.userSessions[userID]
	r.mu.RUnlock()
	return ok
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.userSessions = make(map[string]string)
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	conn, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if conn.userID != "" {
		if current, ok := r.userSessions[conn.userID]; ok && current == sessionID {
			delete(r.userSessions, conn.userID)
		}
	}
}
