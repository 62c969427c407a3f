package bingo

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedSnapshot wraps every decode failure of persisted state.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// wireGame mirrors Game with slices so lengths can be checked; a fixed
// array would silently pad or drop entries.
type wireGame struct {
	Tiles          []Tile   `json:"tiles"`
	ColumnHeaders  []string `json:"columnHeaders"`
	RowHeaders     []string `json:"rowHeaders"`
	Bingo          bool     `json:"bingo"`
	Timestamp      int64    `json:"timestamp"`
	ArtStyle       string   `json:"artStyle"`
	LastUsedStyles []string `json:"lastUsedStyles"`
}

type wireSave struct {
	wireGame
	Name string `json:"name"`
}

func (w wireGame) toGame() (Game, error) {
	var g Game
	if len(w.Tiles) != TileCount {
		return g, fmt.Errorf("%w: %d tiles", ErrMalformedSnapshot, len(w.Tiles))
	}
	if len(w.ColumnHeaders) != Size || len(w.RowHeaders) != Size {
		return g, fmt.Errorf("%w: %d column and %d row headers", ErrMalformedSnapshot, len(w.ColumnHeaders), len(w.RowHeaders))
	}
	for i, t := range w.Tiles {
		if t.Index != i || t.Row != i/Size || t.Col != i%Size {
			return g, fmt.Errorf("%w: tile %d has position (%d,%d) index %d", ErrMalformedSnapshot, i, t.Row, t.Col, t.Index)
		}
		if t.Revealed && t.Completed {
			return g, fmt.Errorf("%w: tile %d both revealed and completed", ErrMalformedSnapshot, i)
		}
		t.Animating = false
		g.Tiles[i] = t
	}
	for i := 0; i < Size; i++ {
		g.ColumnHeaders[i] = truncateRunes(w.ColumnHeaders[i], MaxHeaderLength)
		g.RowHeaders[i] = truncateRunes(w.RowHeaders[i], MaxHeaderLength)
	}
	if w.Timestamp < 0 {
		return g, fmt.Errorf("%w: negative timestamp", ErrMalformedSnapshot)
	}
	g.Bingo = w.Bingo
	g.Timestamp = w.Timestamp
	g.ArtStyle = w.ArtStyle
	if len(w.LastUsedStyles) > RecentStyles {
		w.LastUsedStyles = w.LastUsedStyles[:RecentStyles]
	}
	g.LastUsedStyles = w.LastUsedStyles
	return g, nil
}

// DecodeGame parses and validates a persisted current-game record.
func DecodeGame(data []byte) (Game, error) {
	var w wireGame
	if err := json.Unmarshal(data, &w); err != nil {
		return Game{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return w.toGame()
}

// DecodeSaveList parses and validates the persisted saved-games array.
func DecodeSaveList(data []byte) (SaveList, error) {
	var ws []wireSave
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	out := make(SaveList, 0, len(ws))
	seen := make(map[int64]struct{}, len(ws))
	for i, w := range ws {
		g, err := w.toGame()
		if err != nil {
			return nil, fmt.Errorf("saved game %d: %w", i, err)
		}
		if g.Timestamp == 0 {
			return nil, fmt.Errorf("%w: saved game %d has no timestamp", ErrMalformedSnapshot, i)
		}
		if _, dup := seen[g.Timestamp]; dup {
			return nil, fmt.Errorf("%w: duplicate timestamp %d", ErrMalformedSnapshot, g.Timestamp)
		}
		seen[g.Timestamp] = struct{}{}
		name := truncateRunes(strings.TrimSpace(w.Name), MaxNameLength)
		out = append(out, SavedGame{Game: g, Name: name})
	}
	if len(out) > MaxSavedGames {
		return nil, fmt.Errorf("%w: %d saved games exceeds %d", ErrMalformedSnapshot, len(out), MaxSavedGames)
	}
	out.nameUnnamed()
	return out, nil
}

// nameUnnamed gives every snapshot without a name its own default name,
// oldest first.
func (l SaveList) nameUnnamed() {
	var unnamed []int
	for i, s := range l {
		if s.Name == "" {
			unnamed = append(unnamed, i)
		}
	}
	slices.SortFunc(unnamed, func(a, b int) int {
		return cmp.Compare(l[a].Timestamp, l[b].Timestamp)
	})
	for _, i := range unnamed {
		l[i].Name = l.NextDefaultName()
	}
}

// EncodeGame serialises the live game for the current-game key.
func EncodeGame(g Game) ([]byte, error) {
	return json.Marshal(g)
}

// EncodeSaveList serialises the saved-games key.
func EncodeSaveList(l SaveList) ([]byte, error) {
	if l == nil {
		l = SaveList{}
	}
	return json.Marshal(l)
}
