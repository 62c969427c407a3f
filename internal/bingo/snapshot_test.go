package bingo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameEncodeDecode(t *testing.T) {
	g := NewGame()
	g, _ = g.Reveal(3, testImage)
	g, _ = g.SetRowHeader(4, "Finale")
	g.ArtStyle = "Retro Storybook"
	g.LastUsedStyles = []string{"Retro Storybook"}
	g.Timestamp = baseTS

	data, err := EncodeGame(g)
	require.NoError(t, err)
	got, err := DecodeGame(data)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestDecodeGameClearsAnimation(t *testing.T) {
	g := NewGame()
	g.Tiles[0].Completed = true
	g.Tiles[0].Winning = true
	g.Tiles[0].Animating = true
	data, err := EncodeGame(g)
	require.NoError(t, err)

	got, err := DecodeGame(data)
	require.NoError(t, err)
	assert.True(t, got.Tiles[0].Winning)
	assert.False(t, got.Tiles[0].Animating)
}

func mutateGame(t *testing.T, f func(m map[string]any)) []byte {
	t.Helper()
	data, err := EncodeGame(NewGame())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	f(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func TestDecodeGameRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{nope")},
		{"array", []byte("[]")},
		{"missing tiles", mutateGame(t, func(m map[string]any) { delete(m, "tiles") })},
		{"short board", mutateGame(t, func(m map[string]any) {
			m["tiles"] = m["tiles"].([]any)[:24]
		})},
		{"four row headers", mutateGame(t, func(m map[string]any) {
			m["rowHeaders"] = []string{"a", "b", "c", "d"}
		})},
		{"misplaced tile", mutateGame(t, func(m map[string]any) {
			m["tiles"].([]any)[5].(map[string]any)["row"] = 3.0
		})},
		{"revealed and completed", mutateGame(t, func(m map[string]any) {
			tile := m["tiles"].([]any)[8].(map[string]any)
			tile["revealed"] = true
			tile["completed"] = true
		})},
		{"negative timestamp", mutateGame(t, func(m map[string]any) { m["timestamp"] = -5 })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGame(tt.data)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}

func TestSaveListEncodeDecode(t *testing.T) {
	l := fullList(t)
	data, err := EncodeSaveList(l)
	require.NoError(t, err)
	got, err := DecodeSaveList(data)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	empty, err := EncodeSaveList(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(empty))
}

func TestDecodeSaveListNamesUnnamedEntries(t *testing.T) {
	l := fullList(t)[:3]
	l[0].Name = "Saved Game 4"
	l[1].Name = ""
	l[2].Name = "  "
	data, err := EncodeSaveList(l)
	require.NoError(t, err)

	got, err := DecodeSaveList(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Saved Game 4", got[0].Name)
	assert.Equal(t, "Saved Game 5", got[1].Name)
	assert.Equal(t, "Saved Game 6", got[2].Name)

	names := map[string]bool{}
	for _, s := range got.Summaries(0) {
		assert.False(t, names[s.Name], "duplicate name %q", s.Name)
		names[s.Name] = true
	}
}

func TestDecodeSaveListRejectsMalformed(t *testing.T) {
	l := fullList(t)

	dup := append(SaveList{}, l[:2]...)
	dup[1].Timestamp = dup[0].Timestamp
	dupData, err := EncodeSaveList(dup)
	require.NoError(t, err)

	tooMany := append(SaveList{}, l...)
	extra := l[0]
	extra.Timestamp = baseTS + 77_000
	tooMany = append(tooMany, extra)
	tooManyData, err := EncodeSaveList(tooMany)
	require.NoError(t, err)

	untimed := append(SaveList{}, l[:1]...)
	untimed[0].Timestamp = 0
	untimedData, err := EncodeSaveList(untimed)
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"object":            []byte(`{}`),
		"duplicate":         dupData,
		"over capacity":     tooManyData,
		"missing timestamp": untimedData,
		"bad nested game":   []byte(`[{"tiles":[],"timestamp":1}]`),
	} {
		_, err := DecodeSaveList(data)
		assert.ErrorIs(t, err, ErrMalformedSnapshot, name)
	}
}
