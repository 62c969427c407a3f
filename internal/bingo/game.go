package bingo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTile          = errors.New("tile index out of range")
	ErrTileNotHidden        = errors.New("tile is not hidden")
	ErrTileNotRevealed      = errors.New("tile is not revealed")
	ErrTileNotCompleted     = errors.New("tile is not completed")
	ErrImageMissing         = errors.New("tile has no image yet")
	ErrInvalidHeader        = errors.New("header index out of range")
	ErrNoHiddenTiles        = errors.New("no hidden tiles left")
	ErrCooldownActive       = errors.New("random reveal is cooling down")
	ErrEditModeRequired     = errors.New("edit mode required")
	ErrEditModeActive       = errors.New("not available in edit mode")
	ErrConfirmationRequired = errors.New("current game has progress, confirmation required")
	ErrSaveLimitReached     = errors.New("maximum saved games reached")
	ErrSnapshotNotFound     = errors.New("saved game not found")
)

// Game is the live state record of one board. Transitions are value
// methods returning the next Game and never mutate the receiver.
type Game struct {
	Tiles          Board        `json:"tiles"`
	ColumnHeaders  [Size]string `json:"columnHeaders"`
	RowHeaders     [Size]string `json:"rowHeaders"`
	Bingo          bool         `json:"bingo"`
	Timestamp      int64        `json:"timestamp,omitempty"`
	ArtStyle       string       `json:"artStyle,omitempty"`
	LastUsedStyles []string     `json:"lastUsedStyles,omitempty"`
}

// NewGame returns a fresh board with default headers.
func NewGame() Game {
	return Game{
		Tiles:         NewBoard(DefaultRowHeaders),
		ColumnHeaders: DefaultColumnHeaders,
		RowHeaders:    DefaultRowHeaders,
	}
}

// clone copies the slice field so callers can't alias history.
func (g Game) clone() Game {
	g.LastUsedStyles = append([]string(nil), g.LastUsedStyles...)
	return g
}

// Reveal moves a hidden tile to revealed with the given image URL.
// An empty URL records a failed generation.
func (g Game) Reveal(i int, imageURL string) (Game, error) {
	if !validIndex(i) {
		return g, fmt.Errorf("reveal %d: %w", i, ErrInvalidTile)
	}
	if g.Tiles[i].State() != TileHidden {
		return g, fmt.Errorf("reveal %d: %w", i, ErrTileNotHidden)
	}
	next := g.clone()
	next.Tiles[i].Revealed = true
	next.Tiles[i].ImageURL = imageURL
	return next, nil
}

// SetImage replaces the image of a tile that already left the hidden state.
func (g Game) SetImage(i int, imageURL string) (Game, error) {
	if !validIndex(i) {
		return g, fmt.Errorf("set image %d: %w", i, ErrInvalidTile)
	}
	if g.Tiles[i].State() == TileHidden {
		return g, fmt.Errorf("set image %d: %w", i, ErrTileNotRevealed)
	}
	next := g.clone()
	next.Tiles[i].ImageURL = imageURL
	return next, nil
}

// Complete claims a revealed tile. The tile must carry an image.
func (g Game) Complete(i int) (Game, error) {
	if !validIndex(i) {
		return g, fmt.Errorf("complete %d: %w", i, ErrInvalidTile)
	}
	t := g.Tiles[i]
	if t.State() != TileRevealed {
		return g, fmt.Errorf("complete %d: %w", i, ErrTileNotRevealed)
	}
	if t.ImageURL == "" {
		return g, fmt.Errorf("complete %d: %w", i, ErrImageMissing)
	}
	next := g.clone()
	next.Tiles[i].Revealed = false
	next.Tiles[i].Completed = true
	return next, nil
}

// CheckWin runs the win detector unless the game is already won. On a
// new win the line's tiles are marked and the line is returned.
func (g Game) CheckWin() (Game, *Line) {
	if g.Bingo {
		return g, nil
	}
	line, ok := DetectWin(g.Tiles)
	if !ok {
		return g, nil
	}
	next := g.clone()
	next.Tiles = next.Tiles.markWinning(line)
	next.Bingo = true
	return next, &line
}

// ClearAnimation stops the celebration effect.
func (g Game) ClearAnimation() Game {
	next := g.clone()
	next.Tiles = next.Tiles.clearAnimation()
	return next
}

// SetColumnHeader edits one column label.
func (g Game) SetColumnHeader(i int, text string) (Game, error) {
	if i < 0 || i >= Size {
		return g, fmt.Errorf("column header %d: %w", i, ErrInvalidHeader)
	}
	next := g.clone()
	next.ColumnHeaders[i] = truncateRunes(text, MaxHeaderLength)
	return next, nil
}

// SetRowHeader edits one row label and relabels every tile in that row.
func (g Game) SetRowHeader(i int, text string) (Game, error) {
	if i < 0 || i >= Size {
		return g, fmt.Errorf("row header %d: %w", i, ErrInvalidHeader)
	}
	text = truncateRunes(text, MaxHeaderLength)
	next := g.clone()
	next.RowHeaders[i] = text
	for c := 0; c < Size; c++ {
		next.Tiles[i*Size+c].Label = text
	}
	return next, nil
}

// Reset starts a fresh board. The current art style is retired into the
// recently-used list so the next board picks a different one.
func (g Game) Reset() Game {
	next := NewGame()
	next.LastUsedStyles = g.LastUsedStyles
	if g.ArtStyle != "" {
		next.LastUsedStyles = PushRecent(g.LastUsedStyles, g.ArtStyle)
	}
	return next.clone()
}

// StatusText summarises progress the way the saved-games list shows it.
func (g Game) StatusText() string {
	revealed, completed := g.Tiles.Counts()
	s := fmt.Sprintf("%d Selected / %d Completed", revealed, completed)
	if g.Bingo {
		return "BINGO / " + s
	}
	return s
}

// RecentStyles is how many retired art styles are remembered.
const RecentStyles = 3

// PushRecent puts v at the front of list, drops older copies of v and
// keeps at most RecentStyles entries.
func PushRecent(list []string, v string) []string {
	out := make([]string, 0, RecentStyles)
	out = append(out, v)
	for _, s := range list {
		if len(out) == RecentStyles {
			break
		}
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// HeaderKind distinguishes the two header rails.
type HeaderKind string

const (
	ColumnHeader HeaderKind = "column"
	RowHeader    HeaderKind = "row"
)

// ParseHeaderKind accepts "column"/"col" and "row".
func ParseHeaderKind(s string) (HeaderKind, error) {
	switch strings.ToLower(s) {
	case "column", "col", "columns":
		return ColumnHeader, nil
	case "row", "rows":
		return RowHeader, nil
	}
	return "", fmt.Errorf("header kind %q: %w", s, ErrInvalidHeader)
}

// NextHeader gives the Tab target after (kind, i): columns left to right,
// then rows top to bottom, wrapping back to the first column.
func NextHeader(kind HeaderKind, i int) (HeaderKind, int) {
	if i < Size-1 {
		return kind, i + 1
	}
	if kind == ColumnHeader {
		return RowHeader, 0
	}
	return ColumnHeader, 0
}
