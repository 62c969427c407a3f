package bingo

import "github.com/samber/lo"

// LineKind names the family a winning line belongs to.
type LineKind string

const (
	LineRow          LineKind = "row"
	LineColumn       LineKind = "column"
	LineDiagonal     LineKind = "diagonal"
	LineAntiDiagonal LineKind = "anti-diagonal"
)

// Line is one candidate win line: its kind, its ordinal within the kind
// and the five tile indexes it covers.
type Line struct {
	Kind  LineKind  `json:"kind"`
	Index int       `json:"index"`
	Tiles [Size]int `json:"tiles"`
}

// winLines is the fixed scan order: rows, columns, main diagonal, anti-diagonal.
var winLines = buildWinLines()

func buildWinLines() []Line {
	lines := make([]Line, 0, 2*Size+2)
	for r := 0; r < Size; r++ {
		var l Line
		l.Kind, l.Index = LineRow, r
		for c := 0; c < Size; c++ {
			l.Tiles[c] = r*Size + c
		}
		lines = append(lines, l)
	}
	for c := 0; c < Size; c++ {
		var l Line
		l.Kind, l.Index = LineColumn, c
		for r := 0; r < Size; r++ {
			l.Tiles[r] = r*Size + c
		}
		lines = append(lines, l)
	}
	diag := Line{Kind: LineDiagonal}
	anti := Line{Kind: LineAntiDiagonal}
	for i := 0; i < Size; i++ {
		diag.Tiles[i] = i*Size + i
		anti.Tiles[i] = i*Size + (Size - 1 - i)
	}
	return append(lines, diag, anti)
}

// DetectWin returns the first fully completed line in scan order.
// When several lines complete at once only the first one is reported.
func DetectWin(b Board) (Line, bool) {
	return lo.Find(winLines, func(l Line) bool {
		return lo.EveryBy(l.Tiles[:], func(i int) bool {
			return b[i].Completed
		})
	})
}

// markWinning flags the line's tiles as winning and animating.
func (b Board) markWinning(l Line) Board {
	for _, i := range l.Tiles {
		b[i].Winning = true
		b[i].Animating = true
	}
	return b
}

// clearAnimation drops the animating flag but keeps the winning highlight.
func (b Board) clearAnimation() Board {
	for i := range b {
		b[i].Animating = false
	}
	return b
}
