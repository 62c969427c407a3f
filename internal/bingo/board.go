package bingo

import (
	"unicode/utf8"

	"github.com/samber/lo"
)

// Board geometry and editor limits
const (
	Size            = 5
	TileCount       = Size * Size
	MaxHeaderLength = 60
	MaxNameLength   = 50
	MaxSavedGames   = 5
)

var (
	DefaultColumnHeaders = [Size]string{"B", "I", "N", "G", "O"}
	DefaultRowHeaders    = [Size]string{"100", "200", "300", "400", "500"}
)

// TileState is the derived lifecycle position of a tile.
type TileState string

const (
	TileHidden    TileState = "hidden"
	TileRevealed  TileState = "revealed"
	TileCompleted TileState = "completed"
)

// Tile is one cell of the board.
type Tile struct {
	Index     int    `json:"index"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Label     string `json:"label"`
	Revealed  bool   `json:"revealed"`
	Completed bool   `json:"completed"`
	ImageURL  string `json:"imageUrl"`
	Winning   bool   `json:"isWinningTile,omitempty"`
	Animating bool   `json:"isAnimating,omitempty"`
}

// State reports where the tile sits in hidden -> revealed -> completed.
func (t Tile) State() TileState {
	switch {
	case t.Completed:
		return TileCompleted
	case t.Revealed:
		return TileRevealed
	default:
		return TileHidden
	}
}

// Board is the fixed 5x5 grid, indexed row-major.
type Board [TileCount]Tile

// NewBoard builds 25 hidden tiles labelled from their row header.
func NewBoard(rowHeaders [Size]string) Board {
	var b Board
	for i := range b {
		b[i] = Tile{
			Index: i,
			Row:   i / Size,
			Col:   i % Size,
			Label: rowHeaders[i/Size],
		}
	}
	return b
}

// HasProgress reports whether any tile has left the hidden state.
func (b Board) HasProgress() bool {
	return lo.SomeBy(b[:], func(t Tile) bool {
		return t.Revealed || t.Completed
	})
}

// HiddenIndexes lists the indexes of tiles still hidden.
func (b Board) HiddenIndexes() []int {
	hidden := lo.Filter(b[:], func(t Tile, _ int) bool {
		return t.State() == TileHidden
	})
	return lo.Map(hidden, func(t Tile, _ int) int { return t.Index })
}

// Counts returns how many tiles are revealed and completed.
func (b Board) Counts() (revealed, completed int) {
	revealed = lo.CountBy(b[:], func(t Tile) bool { return t.Revealed })
	completed = lo.CountBy(b[:], func(t Tile) bool { return t.Completed })
	return revealed, completed
}

func validIndex(i int) bool {
	return i >= 0 && i < TileCount
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
