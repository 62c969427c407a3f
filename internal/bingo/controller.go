package bingo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"stickerbingo/internal/prompt"
	"stickerbingo/internal/storage"
)

// Timings of the interactive features.
const (
	CooldownPeriod    = 3 * time.Second
	CelebrationPeriod = 3 * time.Second
	LongPress         = 2000 * time.Millisecond
)

// Store is the slice of storage.KV the controller persists through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ImageGenerator resolves a prompt to an image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, req prompt.Request) (string, error)
}

// Config wires a Controller. Store, Images and Session are required.
type Config struct {
	Session string
	Store   Store
	Images  ImageGenerator
	Prompts *prompt.Builder
	// OnChange receives every new view, outside the controller lock.
	OnChange  func(View)
	Now       func() time.Time
	AfterFunc func(d time.Duration, f func()) (stop func() bool)
	Logger    *zerolog.Logger
}

// View is everything a client renders.
type View struct {
	Game            Game          `json:"game"`
	Status          string        `json:"status"`
	EditMode        bool          `json:"editMode"`
	Cooldown        int           `json:"cooldown"`
	CanReveal       bool          `json:"canReveal"`
	Saves           []SaveSummary `json:"saves"`
	ActiveTimestamp int64         `json:"activeTimestamp"`
	SavesFull       bool          `json:"savesFull"`
	Generation      uint64        `json:"generation"`
}

// HeaderSlot addresses one header cell.
type HeaderSlot struct {
	Kind  HeaderKind `json:"kind"`
	Index int        `json:"index"`
}

// LoadOptions answer the unsaved-progress prompt up front.
type LoadOptions struct {
	Confirm   bool   `json:"confirm"`
	SaveFirst bool   `json:"saveFirst"`
	SaveName  string `json:"saveName"`
}

// Controller owns one player's game. All methods are safe for concurrent
// use; image generation runs outside the lock and its result is applied
// only while the tile's request token and the board generation still match.
type Controller struct {
	mu sync.Mutex

	session   string
	store     Store
	images    ImageGenerator
	prompts   *prompt.Builder
	onChange  func(View)
	now       func() time.Time
	afterFunc func(time.Duration, func()) func() bool
	log       zerolog.Logger

	game            Game
	saves           SaveList
	editMode        bool
	generation      uint64
	tokens          [TileCount]uint64
	cooldown        *rate.Limiter
	stopCelebration func() bool
}

// imageJob is one issued image request.
type imageJob struct {
	index      int
	token      uint64
	generation uint64
	req        prompt.Request
}

// NewController restores the session's persisted state. Missing or
// malformed records fall back to a fresh board and an empty save list.
func NewController(ctx context.Context, cfg Config) *Controller {
	c := &Controller{
		session:   cfg.Session,
		store:     cfg.Store,
		images:    cfg.Images,
		prompts:   cfg.Prompts,
		onChange:  cfg.OnChange,
		now:       cfg.Now,
		afterFunc: cfg.AfterFunc,
		cooldown:  rate.NewLimiter(rate.Every(CooldownPeriod), 1),
	}
	if c.prompts == nil {
		c.prompts = prompt.NewBuilder()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	base := log.Logger
	if cfg.Logger != nil {
		base = *cfg.Logger
	}
	c.log = base.With().Str("session", cfg.Session).Logger()

	c.game = c.restoreGame(ctx)
	c.saves = c.restoreSaves(ctx)
	return c
}

func (c *Controller) restoreGame(ctx context.Context) Game {
	data, err := c.store.Get(ctx, storage.Key(c.session, storage.CurrentGameKey))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.Warn().Err(err).Msg("failed to read current game, starting fresh")
		}
		return NewGame()
	}
	g, err := DecodeGame(data)
	if err != nil {
		c.log.Warn().Err(err).Msg("discarding malformed current game")
		return NewGame()
	}
	return g
}

func (c *Controller) restoreSaves(ctx context.Context) SaveList {
	data, err := c.store.Get(ctx, storage.Key(c.session, storage.SavedGamesKey))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.Warn().Err(err).Msg("failed to read saved games")
		}
		return SaveList{}
	}
	l, err := DecodeSaveList(data)
	if err != nil {
		c.log.Warn().Err(err).Msg("discarding malformed saved games")
		return SaveList{}
	}
	return l
}

// View returns the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	cooldown := c.cooldownLocked()
	return View{
		Game:            c.game.clone(),
		Status:          c.game.StatusText(),
		EditMode:        c.editMode,
		Cooldown:        cooldown,
		CanReveal:       !c.editMode && cooldown == 0 && len(c.game.Tiles.HiddenIndexes()) > 0,
		Saves:           c.saves.Summaries(c.game.Timestamp),
		ActiveTimestamp: c.game.Timestamp,
		SavesFull:       c.saves.Full(),
		Generation:      c.generation,
	}
}

// cooldownLocked is the random-reveal wait in whole seconds, rounded up.
func (c *Controller) cooldownLocked() int {
	tokens := c.cooldown.TokensAt(c.now())
	if tokens >= 1 {
		return 0
	}
	remaining := time.Duration((1 - tokens) * float64(CooldownPeriod)).Round(time.Millisecond)
	return int(math.Ceil(remaining.Seconds()))
}

// unlockAndPublish releases the lock and then hands v to OnChange.
func (c *Controller) unlockAndPublish() View {
	v := c.viewLocked()
	c.mu.Unlock()
	if c.onChange != nil {
		c.onChange(v)
	}
	return v
}

// RevealRandom reveals a uniformly chosen hidden tile and starts the
// cooldown. A failed generation leaves the tile revealed without image.
func (c *Controller) RevealRandom(ctx context.Context) (View, error) {
	c.mu.Lock()
	if c.editMode {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrEditModeActive
	}
	hidden := c.game.Tiles.HiddenIndexes()
	if len(hidden) == 0 {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrNoHiddenTiles
	}
	i := hidden[c.prompts.Intn(len(hidden))]
	next, err := c.game.Reveal(i, "")
	if err != nil {
		defer c.mu.Unlock()
		c.log.Warn().Err(err).Int("tile", i).Msg("random reveal rejected")
		return c.viewLocked(), err
	}
	if !c.cooldown.AllowN(c.now(), 1) {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrCooldownActive
	}
	c.game = next
	c.checkWinLocked()
	job := c.issueLocked(i)
	c.persistGameLocked(ctx)
	c.log.Info().Int("tile", i).Int("hidden", len(hidden)-1).Msg("random reveal")
	c.unlockAndPublish()

	url, err := c.generate(ctx, job)
	if err != nil {
		return c.View(), nil
	}
	return c.applyImage(ctx, job, url), nil
}

// RevealTile reveals a chosen hidden tile. Edit mode only; the tile stays
// hidden when generation fails.
func (c *Controller) RevealTile(ctx context.Context, i int) (View, error) {
	c.mu.Lock()
	if !validIndex(i) {
		defer c.mu.Unlock()
		return c.viewLocked(), fmt.Errorf("reveal %d: %w", i, ErrInvalidTile)
	}
	if !c.editMode {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrEditModeRequired
	}
	if c.game.Tiles[i].State() != TileHidden {
		defer c.mu.Unlock()
		return c.viewLocked(), fmt.Errorf("reveal %d: %w", i, ErrTileNotHidden)
	}
	job := c.issueLocked(i)
	c.mu.Unlock()

	url, err := c.generate(ctx, job)
	if err != nil {
		return c.View(), fmt.Errorf("reveal %d: %w", i, err)
	}
	return c.applyImage(ctx, job, url), nil
}

// Click completes a revealed tile with an image, or retries generation
// for one without. Other tiles, and any click in edit mode, are no-ops.
func (c *Controller) Click(ctx context.Context, i int) (View, error) {
	c.mu.Lock()
	if !validIndex(i) {
		defer c.mu.Unlock()
		return c.viewLocked(), fmt.Errorf("click %d: %w", i, ErrInvalidTile)
	}
	t := c.game.Tiles[i]
	if c.editMode || t.State() != TileRevealed {
		defer c.mu.Unlock()
		return c.viewLocked(), nil
	}

	if t.ImageURL == "" {
		job := c.issueLocked(i)
		c.mu.Unlock()
		c.log.Info().Int("tile", i).Msg("retrying image generation")
		url, err := c.generate(ctx, job)
		if err != nil {
			return c.View(), nil
		}
		return c.applyImage(ctx, job, url), nil
	}

	next, err := c.game.Complete(i)
	if err != nil {
		defer c.mu.Unlock()
		c.log.Warn().Err(err).Int("tile", i).Msg("complete rejected")
		return c.viewLocked(), err
	}
	c.game = next
	c.checkWinLocked()
	c.persistGameLocked(ctx)
	return c.unlockAndPublish(), nil
}

// Press handles a press of the given duration. Long presses on a
// completed tile regenerate its image; anything else is a click.
func (c *Controller) Press(ctx context.Context, i int, held time.Duration) (View, error) {
	if held < LongPress {
		return c.Click(ctx, i)
	}
	c.mu.Lock()
	if !validIndex(i) {
		defer c.mu.Unlock()
		return c.viewLocked(), fmt.Errorf("press %d: %w", i, ErrInvalidTile)
	}
	if c.game.Tiles[i].State() != TileCompleted {
		c.mu.Unlock()
		return c.Click(ctx, i)
	}
	job := c.issueLocked(i)
	c.mu.Unlock()

	c.log.Info().Int("tile", i).Msg("regenerating image")
	url, err := c.generate(ctx, job)
	if err != nil {
		return c.View(), fmt.Errorf("regenerate %d: %w", i, err)
	}
	return c.applyImage(ctx, job, url), nil
}

// issueLocked tags a new image request for tile i, choosing the board's
// art style first if it has none.
func (c *Controller) issueLocked(i int) imageJob {
	if c.game.ArtStyle == "" {
		style := prompt.PickStyle(c.game.LastUsedStyles, c.prompts.Intn)
		c.game.ArtStyle = style
		c.game.LastUsedStyles = PushRecent(c.game.LastUsedStyles, style)
		c.log.Debug().Str("style", style).Msg("art style chosen")
	}
	c.tokens[i]++
	return imageJob{
		index:      i,
		token:      c.tokens[i],
		generation: c.generation,
		req:        c.prompts.Next(c.game.ArtStyle),
	}
}

func (c *Controller) generate(ctx context.Context, job imageJob) (string, error) {
	url, err := c.images.Generate(ctx, job.req)
	if err == nil && url == "" {
		err = errors.New("empty image url")
	}
	if err != nil {
		c.log.Warn().Err(err).Int("tile", job.index).Str("subject", job.req.Subject).Msg("image generation failed")
		return "", err
	}
	return url, nil
}

// applyImage stores a finished image unless the request went stale.
func (c *Controller) applyImage(ctx context.Context, job imageJob, url string) View {
	c.mu.Lock()
	if job.generation != c.generation || job.token != c.tokens[job.index] {
		c.log.Debug().Int("tile", job.index).Uint64("generation", job.generation).Msg("discarding stale image")
		defer c.mu.Unlock()
		return c.viewLocked()
	}
	var (
		next Game
		err  error
	)
	if c.game.Tiles[job.index].State() == TileHidden {
		next, err = c.game.Reveal(job.index, url)
	} else {
		next, err = c.game.SetImage(job.index, url)
	}
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked()
	}
	c.game = next
	c.persistGameLocked(ctx)
	return c.unlockAndPublish()
}

func (c *Controller) checkWinLocked() {
	next, line := c.game.CheckWin()
	c.game = next
	if line == nil {
		return
	}
	c.log.Info().Str("line", string(line.Kind)).Int("index", line.Index).Msg("bingo")
	if c.stopCelebration != nil {
		c.stopCelebration()
	}
	gen := c.generation
	c.stopCelebration = c.afterFunc(CelebrationPeriod, func() { c.endCelebration(gen) })
}

// endCelebration clears the win animation of board generation gen.
func (c *Controller) endCelebration(gen uint64) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.game = c.game.ClearAnimation()
	c.stopCelebration = nil
	c.persistGameLocked(context.Background())
	c.unlockAndPublish()
}

// replaceBoardLocked installs g as a new board lifetime.
func (c *Controller) replaceBoardLocked(g Game) {
	c.generation++
	if c.stopCelebration != nil {
		c.stopCelebration()
		c.stopCelebration = nil
	}
	c.game = g.ClearAnimation()
	c.prompts.Reset()
}

// SetEditMode toggles header and manual-reveal editing.
func (c *Controller) SetEditMode(on bool) View {
	c.mu.Lock()
	c.editMode = on
	return c.unlockAndPublish()
}

// SetHeader edits one header in edit mode and returns the slot Tab moves to.
func (c *Controller) SetHeader(ctx context.Context, kind HeaderKind, i int, text string) (View, HeaderSlot, error) {
	c.mu.Lock()
	if !c.editMode {
		defer c.mu.Unlock()
		return c.viewLocked(), HeaderSlot{}, ErrEditModeRequired
	}
	var (
		next Game
		err  error
	)
	switch kind {
	case ColumnHeader:
		next, err = c.game.SetColumnHeader(i, text)
	case RowHeader:
		next, err = c.game.SetRowHeader(i, text)
	default:
		err = fmt.Errorf("header kind %q: %w", kind, ErrInvalidHeader)
	}
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked(), HeaderSlot{}, err
	}
	c.game = next
	c.persistGameLocked(ctx)
	nk, ni := NextHeader(kind, i)
	return c.unlockAndPublish(), HeaderSlot{Kind: nk, Index: ni}, nil
}

// NewGame starts a fresh board. Without confirm it refuses when the board
// has progress, or when every save slot is taken.
func (c *Controller) NewGame(ctx context.Context, confirm bool) (View, error) {
	c.mu.Lock()
	if !confirm {
		if c.game.Tiles.HasProgress() {
			defer c.mu.Unlock()
			return c.viewLocked(), ErrConfirmationRequired
		}
		if c.saves.Full() {
			defer c.mu.Unlock()
			return c.viewLocked(), ErrSaveLimitReached
		}
	}
	c.replaceBoardLocked(c.game.Reset())
	if err := c.store.Delete(context.WithoutCancel(ctx), storage.Key(c.session, storage.CurrentGameKey)); err != nil {
		c.log.Warn().Err(err).Msg("failed to delete current game")
	}
	c.log.Info().Uint64("generation", c.generation).Msg("new game")
	return c.unlockAndPublish(), nil
}

// Save snapshots the live game; it becomes the active snapshot.
func (c *Controller) Save(ctx context.Context, name string) (View, error) {
	c.mu.Lock()
	snap := c.saveLocked(name)
	c.persistSavesLocked(ctx)
	c.persistGameLocked(ctx)
	c.log.Info().Int64("timestamp", snap.Timestamp).Str("name", snap.Name).Int("saves", len(c.saves)).Msg("game saved")
	return c.unlockAndPublish(), nil
}

func (c *Controller) saveLocked(name string, keep ...int64) SavedGame {
	saves, snap := c.saves.Save(c.game, name, c.now().UnixMilli(), keep...)
	c.saves = saves
	c.game.Timestamp = snap.Timestamp
	return snap
}

// Load replaces the live board with a snapshot. A board with progress
// needs opts.Confirm, or opts.SaveFirst to save it beforehand.
func (c *Controller) Load(ctx context.Context, ts int64, opts LoadOptions) (View, error) {
	c.mu.Lock()
	snap, ok := c.saves.Find(ts)
	if !ok {
		defer c.mu.Unlock()
		return c.viewLocked(), fmt.Errorf("load %d: %w", ts, ErrSnapshotNotFound)
	}
	if c.game.Tiles.HasProgress() && !opts.Confirm && !opts.SaveFirst {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrConfirmationRequired
	}
	if opts.SaveFirst {
		// The snapshot being loaded must survive the eviction this save may cause.
		saved := c.saveLocked(opts.SaveName, ts)
		c.log.Info().Int64("timestamp", saved.Timestamp).Msg("saved before load")
	}

	g := snap.Game.clone()
	g.Timestamp = snap.Timestamp
	c.replaceBoardLocked(g)
	c.persistSavesLocked(ctx)
	c.persistGameLocked(ctx)
	c.log.Info().Int64("timestamp", ts).Uint64("generation", c.generation).Msg("game loaded")
	return c.unlockAndPublish(), nil
}

// Delete removes a snapshot. Deleting the active one resets the board.
func (c *Controller) Delete(ctx context.Context, ts int64) (View, error) {
	c.mu.Lock()
	saves, err := c.saves.Delete(ts)
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}
	c.saves = saves
	if c.game.Timestamp == ts {
		fresh := NewGame()
		fresh.ArtStyle = c.game.ArtStyle
		fresh.LastUsedStyles = c.game.LastUsedStyles
		c.replaceBoardLocked(fresh)
		c.persistGameLocked(ctx)
	}
	c.persistSavesLocked(ctx)
	c.log.Info().Int64("timestamp", ts).Msg("saved game deleted")
	return c.unlockAndPublish(), nil
}

// Rename changes a snapshot's name; blank restores a default name.
func (c *Controller) Rename(ctx context.Context, ts int64, name string) (View, error) {
	c.mu.Lock()
	saves, err := c.saves.Rename(ts, name)
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}
	c.saves = saves
	c.persistSavesLocked(ctx)
	return c.unlockAndPublish(), nil
}

// Close stops pending timers and invalidates in-flight image requests.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.stopCelebration != nil {
		c.stopCelebration()
		c.stopCelebration = nil
	}
}

func (c *Controller) persistGameLocked(ctx context.Context) {
	data, err := EncodeGame(c.game)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to encode current game")
		return
	}
	c.putLocked(ctx, storage.CurrentGameKey, data)
}

func (c *Controller) persistSavesLocked(ctx context.Context) {
	data, err := EncodeSaveList(c.saves)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to encode saved games")
		return
	}
	c.putLocked(ctx, storage.SavedGamesKey, data)
}

// putLocked writes through even if the request was cancelled; write
// failures are logged and never fail the action.
func (c *Controller) putLocked(ctx context.Context, logical string, data []byte) {
	if err := c.store.Put(context.WithoutCancel(ctx), storage.Key(c.session, logical), data); err != nil {
		c.log.Warn().Err(err).Str("key", logical).Msg("failed to persist")
	}
}
