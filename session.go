package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stickerbingo/internal/bingo"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a
// new one. The cookie is re-issued on every request so it expires only
// after CookieMaxAge without a visit.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || uuid.Validate(sessionID) != nil {
		sessionID = uuid.NewString()
		zerolog.Ctx(c.Request.Context()).Info().Str("session", sessionID).Msg("created new session")
	}
	c.SetSameSite(http.SameSiteStrictMode)
	secure := app.IsProduction
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
	return sessionID
}

// controllerFor returns the session's controller, restoring it from the
// store the first time the session is seen by this process.
func (app *App) controllerFor(ctx context.Context, sessionID string) *bingo.Controller {
	now := time.Now()
	app.SessionMutex.Lock()
	if entry, ok := app.Sessions[sessionID]; ok {
		entry.lastSeen = now
		app.SessionMutex.Unlock()
		return entry.controller
	}
	app.SessionMutex.Unlock()

	ctrl := app.newController(ctx, sessionID)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if entry, ok := app.Sessions[sessionID]; ok {
		// Another request restored the session first.
		ctrl.Close()
		entry.lastSeen = now
		return entry.controller
	}
	app.Sessions[sessionID] = &sessionEntry{controller: ctrl, lastSeen: now}
	logInfo("Restored session %s (%d live)", sessionID, len(app.Sessions))
	return ctrl
}

func (app *App) newController(ctx context.Context, sessionID string) *bingo.Controller {
	cfg := bingo.Config{
		Session: sessionID,
		Store:   app.Store,
		Images:  app.Images,
		OnChange: func(v bingo.View) {
			app.Hub.Broadcast(sessionID, v)
		},
		Logger: &log.Logger,
	}
	if app.NewPrompts != nil {
		cfg.Prompts = app.NewPrompts()
	}
	return bingo.NewController(ctx, cfg)
}

// evictIdleSessions closes sessions idle for longer than SessionTimeout.
// Their state stays in the store and is restored on the next request.
func (app *App) evictIdleSessions(now time.Time) int {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	evicted := 0
	for id, entry := range app.Sessions {
		if now.Sub(entry.lastSeen) <= app.SessionTimeout {
			continue
		}
		if app.Hub.SubscriberCount(id) > 0 {
			continue
		}
		entry.controller.Close()
		delete(app.Sessions, id)
		evicted++
	}
	return evicted
}

// sessionCount returns the number of live sessions.
func (app *App) sessionCount() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}
