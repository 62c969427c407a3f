package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"stickerbingo/internal/bingo"
	"stickerbingo/internal/imagegen"
	"stickerbingo/internal/prompt"
	"stickerbingo/internal/storage"
)

// App holds the server-wide state shared by all handlers.
type App struct {
	SessionMutex sync.RWMutex
	Sessions     map[string]*sessionEntry

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	Store  storage.KV
	Images imagegen.Service
	Hub    *Hub

	// NewPrompts builds a prompt builder for each new session; nil uses
	// the default random source.
	NewPrompts func() *prompt.Builder

	IsProduction   bool
	SessionTimeout time.Duration // idle time before a controller leaves memory
	StoreRetention time.Duration // idle time before a session's records leave the store
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	StartTime      time.Time
}

// sessionEntry is one live player session.
type sessionEntry struct {
	controller *bingo.Controller
	lastSeen   time.Time
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string      `json:"error"`
	Code  string      `json:"code"`
	View  *bingo.View `json:"view,omitempty"`
}

// pressRequest reports how long a tile was held down.
type pressRequest struct {
	HeldMs int64 `json:"heldMs"`
}

type editModeRequest struct {
	Enabled bool `json:"enabled"`
}

type headerRequest struct {
	Text string `json:"text"`
}

type newGameRequest struct {
	Confirm bool `json:"confirm"`
}

// nameRequest carries the optional name of a save or rename.
type nameRequest struct {
	Name string `json:"name"`
}

// headerResponse adds the Tab target to the view after a header edit.
type headerResponse struct {
	bingo.View
	Next bingo.HeaderSlot `json:"next"`
}
