package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome       = "/"
	RouteState      = "/api/state"
	RouteReveal     = "/api/reveal"
	RouteTileClick  = "/api/tiles/:index/click"
	RouteTilePress  = "/api/tiles/:index/press"
	RouteTileReveal = "/api/tiles/:index/reveal"
	RouteEditMode   = "/api/edit-mode"
	RouteHeader     = "/api/headers/:kind/:index"
	RouteNewGame    = "/api/new-game"
	RouteSaves      = "/api/saves"
	RouteSave       = "/api/saves/:ts"
	RouteLoad       = "/api/saves/:ts/load"
	RouteEvents     = "/ws"
	RouteHealth     = "/healthz"
)

// Error code constants returned in JSON error bodies
const (
	CodeConfirmationRequired = "confirmation_required"
	CodeSaveLimitReached     = "save_limit_reached"
	CodeCooldown             = "cooldown_active"
	CodeNoHiddenTiles        = "no_hidden_tiles"
	CodeInvalidRequest       = "invalid_request"
	CodeNotFound             = "not_found"
	CodeEditMode             = "edit_mode"
	CodeImageFailed          = "image_generation_failed"
	CodeRateLimited          = "rate_limited"
	CodeInternal             = "internal_error"
)

const pageTitle = "Sticker Bingo"

// Context key constants
type contextKey string

const (
	requestIDKey contextKey = "request_id"
)
