package bingo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const defaultNamePrefix = "Saved Game "

// SavedGame is one persisted snapshot, addressed by Timestamp.
type SavedGame struct {
	Game
	Name string `json:"name,omitempty"`
}

// SaveList is the ordered collection of snapshots (oldest first).
type SaveList []SavedGame

// Find returns the snapshot with the given timestamp.
func (l SaveList) Find(ts int64) (SavedGame, bool) {
	return lo.Find(l, func(s SavedGame) bool { return s.Timestamp == ts })
}

// Full reports whether the capacity is reached.
func (l SaveList) Full() bool {
	return len(l) >= MaxSavedGames
}

// NextDefaultName is "Saved Game N" where N is one past the highest N
// already used by a default-style name.
func (l SaveList) NextDefaultName() string {
	highest := 0
	for _, s := range l {
		if n, ok := defaultNameNumber(s.Name); ok && n > highest {
			highest = n
		}
	}
	return defaultNamePrefix + strconv.Itoa(highest+1)
}

func defaultNameNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, defaultNamePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Save stores g. A game already carrying a timestamp overwrites its
// snapshot; otherwise it gets a fresh unique timestamp derived from now
// (unix milliseconds). Past capacity the lowest timestamp is evicted,
// skipping the new snapshot and any timestamp listed in keep.
// The returned SavedGame carries the timestamp the caller should treat as
// active.
func (l SaveList) Save(g Game, name string, now int64, keep ...int64) (SaveList, SavedGame) {
	ts := g.Timestamp
	if ts == 0 {
		ts = now
		for {
			if _, taken := l.Find(ts); !taken {
				break
			}
			ts++
		}
	}

	name = truncateRunes(strings.TrimSpace(name), MaxNameLength)
	existing, found := l.Find(ts)
	if name == "" && found {
		name = existing.Name
	}
	if name == "" {
		name = l.NextDefaultName()
	}

	snap := SavedGame{Game: g.clone(), Name: name}
	snap.Timestamp = ts

	if found {
		out := lo.Map(l, func(s SavedGame, _ int) SavedGame {
			if s.Timestamp == ts {
				return snap
			}
			return s
		})
		return out, snap
	}

	out := append(slices.Clone(l), snap)
	for len(out) > MaxSavedGames {
		candidates := lo.Reject(out, func(s SavedGame, _ int) bool {
			return s.Timestamp == ts || slices.Contains(keep, s.Timestamp)
		})
		if len(candidates) == 0 {
			break
		}
		oldest := lo.MinBy(candidates, func(a, b SavedGame) bool { return a.Timestamp < b.Timestamp })
		out = lo.Reject(out, func(s SavedGame, _ int) bool { return s.Timestamp == oldest.Timestamp })
	}
	return out, snap
}

// Delete removes one snapshot.
func (l SaveList) Delete(ts int64) (SaveList, error) {
	if _, ok := l.Find(ts); !ok {
		return l, fmt.Errorf("delete %d: %w", ts, ErrSnapshotNotFound)
	}
	return lo.Reject(l, func(s SavedGame, _ int) bool { return s.Timestamp == ts }), nil
}

// Rename sets a custom name. A blank name drops the custom name and the
// next default name is assigned instead.
func (l SaveList) Rename(ts int64, name string) (SaveList, error) {
	if _, ok := l.Find(ts); !ok {
		return l, fmt.Errorf("rename %d: %w", ts, ErrSnapshotNotFound)
	}
	name = truncateRunes(strings.TrimSpace(name), MaxNameLength)
	if name == "" {
		others := lo.Reject(l, func(s SavedGame, _ int) bool { return s.Timestamp == ts })
		name = others.NextDefaultName()
	}
	return lo.Map(l, func(s SavedGame, _ int) SavedGame {
		if s.Timestamp == ts {
			s.Name = name
		}
		return s
	}), nil
}

// SaveSummary is the list entry shown in the saved-games manager.
type SaveSummary struct {
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Bingo     bool   `json:"bingo"`
	Active    bool   `json:"active"`
}

// Summaries lists the snapshots newest first.
func (l SaveList) Summaries(active int64) []SaveSummary {
	out := lo.Map(l, func(s SavedGame, _ int) SaveSummary {
		return SaveSummary{
			Timestamp: s.Timestamp,
			Name:      s.Name,
			Status:    s.StatusText(),
			Bingo:     s.Bingo,
			Active:    active != 0 && s.Timestamp == active,
		}
	})
	slices.SortFunc(out, func(a, b SaveSummary) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})
	return out
}
