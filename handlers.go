package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stickerbingo/internal/bingo"
)

// homeHandler renders the game page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	view := app.controllerFor(ctx, sessionID).View()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": pageTitle,
		"view":  view,
	})
}

// stateHandler returns the current view.
func (app *App) stateHandler(c *gin.Context) {
	ctrl := app.sessionController(c)
	c.JSON(http.StatusOK, ctrl.View())
}

// revealHandler reveals a random hidden tile.
func (app *App) revealHandler(c *gin.Context) {
	ctrl := app.sessionController(c)
	view, err := ctrl.RevealRandom(c.Request.Context())
	app.respond(c, view, err)
}

// tileClickHandler completes a tile, or retries its image.
func (app *App) tileClickHandler(c *gin.Context) {
	i, ok := tileIndex(c)
	if !ok {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Click(c.Request.Context(), i)
	app.respond(c, view, err)
}

// tilePressHandler handles a press of reported duration; long presses on
// completed tiles regenerate the image.
func (app *App) tilePressHandler(c *gin.Context) {
	i, ok := tileIndex(c)
	if !ok {
		return
	}
	var req pressRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.HeldMs < 0 {
		abortInvalid(c, "heldMs must not be negative")
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Press(c.Request.Context(), i, time.Duration(req.HeldMs)*time.Millisecond)
	app.respond(c, view, err)
}

// tileRevealHandler reveals a chosen tile in edit mode.
func (app *App) tileRevealHandler(c *gin.Context) {
	i, ok := tileIndex(c)
	if !ok {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.RevealTile(c.Request.Context(), i)
	app.respond(c, view, err)
}

// editModeHandler toggles edit mode.
func (app *App) editModeHandler(c *gin.Context) {
	var req editModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, "body must be {\"enabled\": bool}")
		return
	}
	ctrl := app.sessionController(c)
	c.JSON(http.StatusOK, ctrl.SetEditMode(req.Enabled))
}

// headerHandler edits one column or row header.
func (app *App) headerHandler(c *gin.Context) {
	kind, err := bingo.ParseHeaderKind(c.Param("kind"))
	if err != nil {
		abortInvalid(c, err.Error())
		return
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortInvalid(c, "header index must be a number")
		return
	}
	var req headerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, "body must be {\"text\": string}")
		return
	}
	ctrl := app.sessionController(c)
	view, next, err := ctrl.SetHeader(c.Request.Context(), kind, i, req.Text)
	if err != nil {
		app.respond(c, view, err)
		return
	}
	c.JSON(http.StatusOK, headerResponse{View: view, Next: next})
}

// newGameHandler starts a fresh board.
func (app *App) newGameHandler(c *gin.Context) {
	var req newGameRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.NewGame(c.Request.Context(), req.Confirm)
	app.respond(c, view, err)
}

// savesHandler lists the saved games.
func (app *App) savesHandler(c *gin.Context) {
	view := app.sessionController(c).View()
	c.JSON(http.StatusOK, gin.H{
		"saves":           view.Saves,
		"activeTimestamp": view.ActiveTimestamp,
		"savesFull":       view.SavesFull,
	})
}

// saveHandler snapshots the live game.
func (app *App) saveHandler(c *gin.Context) {
	var req nameRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Save(c.Request.Context(), req.Name)
	if err != nil {
		app.respond(c, view, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// loadHandler replaces the live game with a snapshot.
func (app *App) loadHandler(c *gin.Context) {
	ts, ok := snapshotTimestamp(c)
	if !ok {
		return
	}
	var opts bingo.LoadOptions
	if !bindOptionalJSON(c, &opts) {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Load(c.Request.Context(), ts, opts)
	app.respond(c, view, err)
}

// renameHandler renames a snapshot.
func (app *App) renameHandler(c *gin.Context) {
	ts, ok := snapshotTimestamp(c)
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalid(c, "body must be {\"name\": string}")
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Rename(c.Request.Context(), ts, req.Name)
	app.respond(c, view, err)
}

// deleteHandler removes a snapshot.
func (app *App) deleteHandler(c *gin.Context) {
	ts, ok := snapshotTimestamp(c)
	if !ok {
		return
	}
	ctrl := app.sessionController(c)
	view, err := ctrl.Delete(c.Request.Context(), ts)
	app.respond(c, view, err)
}

// eventsHandler streams view updates over a websocket.
func (app *App) eventsHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	ctrl := app.controllerFor(c.Request.Context(), sessionID)
	app.Hub.ServeWS(c.Writer, c.Request, sessionID, ctrl.View())
}

// healthHandler reports liveness and a few counters.
func (app *App) healthHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"sessions":  app.sessionCount(),
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (app *App) sessionController(c *gin.Context) *bingo.Controller {
	sessionID := app.getOrCreateSession(c)
	return app.controllerFor(c.Request.Context(), sessionID)
}

// respond writes the view, or the error mapped to its status and code
// together with the unchanged view.
func (app *App) respond(c *gin.Context, view bingo.View, err error) {
	if err == nil {
		c.JSON(http.StatusOK, view)
		return
	}
	status, code := errorStatus(err)
	logger := zerolog.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Warn().Err(err).Str("code", code).Msg("action failed")
	} else {
		logger.Debug().Err(err).Str("code", code).Msg("action rejected")
	}
	c.JSON(status, errorResponse{Error: err.Error(), Code: code, View: &view})
}

// errorStatus maps controller errors to HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, bingo.ErrConfirmationRequired):
		return http.StatusConflict, CodeConfirmationRequired
	case errors.Is(err, bingo.ErrSaveLimitReached):
		return http.StatusConflict, CodeSaveLimitReached
	case errors.Is(err, bingo.ErrNoHiddenTiles):
		return http.StatusConflict, CodeNoHiddenTiles
	case errors.Is(err, bingo.ErrCooldownActive):
		return http.StatusTooManyRequests, CodeCooldown
	case errors.Is(err, bingo.ErrInvalidTile),
		errors.Is(err, bingo.ErrInvalidHeader),
		errors.Is(err, bingo.ErrTileNotHidden):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, bingo.ErrTileNotRevealed),
		errors.Is(err, bingo.ErrImageMissing):
		return http.StatusConflict, CodeInvalidRequest
	case errors.Is(err, bingo.ErrSnapshotNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, bingo.ErrEditModeRequired),
		errors.Is(err, bingo.ErrEditModeActive):
		return http.StatusForbidden, CodeEditMode
	}
	// Everything else comes from the image backend.
	return http.StatusBadGateway, CodeImageFailed
}

func tileIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= bingo.TileCount {
		abortInvalid(c, "tile index must be 0-24")
		return 0, false
	}
	return i, true
}

func snapshotTimestamp(c *gin.Context) (int64, bool) {
	ts, err := strconv.ParseInt(c.Param("ts"), 10, 64)
	if err != nil || ts <= 0 {
		abortInvalid(c, "saved game timestamp must be a positive number")
		return 0, false
	}
	return ts, true
}

// bindOptionalJSON binds a JSON body when there is one; an empty body
// leaves obj at its zero value.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		abortInvalid(c, "malformed JSON body")
		return false
	}
	return true
}

func abortInvalid(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg, Code: CodeInvalidRequest})
}
