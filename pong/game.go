package pong

import (
	"math/rand/v2"
	"strconv"

	"go.uber.org/zap"

	"github.com/plus3/pong/ecs"
)

type Options struct {
	Input  Input
	Cues   Cues
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Game owns the world and drives it one frame at a time.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     Input
	rng       *rand.Rand
	log       *zap.Logger

	mode      Mode
	match     *ecs.Singleton[Match]
	arena     *ecs.Singleton[Arena]
	homes     *ecs.View[homeItem]
	drawables *ecs.View[drawItem]
}

type drawItem struct {
	*Bounds
	*Tint
}

// NewGame spawns the paddles and ball and starts in ModePaused.
func NewGame(opts Options) *Game {
	if opts.Input == nil {
		opts.Input = noInput{}
	}
	if opts.Cues == nil {
		opts.Cues = nopCues{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	storage := ecs.NewStorage(NewRegistry())
	arena := ecs.NewSingleton(storage, Arena{Width: ArenaWidth, Height: ArenaHeight})
	match := ecs.NewSingleton(storage, Match{})

	spawnWorld(storage, *arena.Get(), opts.Rand)

	scheduler := ecs.NewScheduler(storage)
	for _, system := range Systems(opts.Input, opts.Cues, opts.Rand) {
		scheduler.Register(system)
	}

	g := &Game{
		storage:   storage,
		scheduler: scheduler,
		input:     opts.Input,
		rng:       opts.Rand,
		log:       opts.Logger,
		mode:      Mode{Kind: ModePaused},
		match:     match,
		arena:     arena,
		homes:     ecs.NewView[homeItem](storage),
		drawables: ecs.NewView[drawItem](storage),
	}
	g.log.Debug("game created", zap.Int("entities", storage.Len()))
	return g
}

// Step advances the game by dt seconds. Negative values are treated as zero.
func (g *Game) Step(dt float64) {
	dt = max(dt, 0)
	match := g.match.Get()
	match.SinceCollision += dt

	switch g.mode.Kind {
	case ModePaused:
		if g.input.IsKeyPressed(KeyStart) {
			g.apply(event{kind: eventStart})
		}

	case ModePlaying:
		match.Exit = NoPlayer
		g.scheduler.Once(dt)
		if match.Exit != NoPlayer {
			g.apply(event{kind: eventScored, player: match.Exit})
		} else if g.input.IsKeyPressed(KeyPause) {
			g.apply(event{kind: eventPause})
		}

	case ModeScored:
		if g.input.IsKeyPressed(KeyReset) {
			g.apply(event{kind: eventReset})
		} else if g.input.IsKeyPressed(KeyContinue) {
			g.apply(event{kind: eventContinue})
		}
	}
}

func (g *Game) apply(ev event) {
	if ev.kind == eventScored && !ev.player.Valid() {
		g.log.Fatal("scoring signal names an unknown player", zap.Int("player", int(ev.player)))
	}

	next, ok := g.mode.next(ev)
	if !ok {
		return
	}

	switch ev.kind {
	case eventScored:
		g.log.Info("point scored",
			zap.Stringer("scorer", ev.player),
			zap.Ints("score", g.match.Get().Score[:]),
		)
	case eventReset:
		g.Reset()
	}

	g.log.Debug("mode changed", zap.Stringer("from", g.mode), zap.Stringer("to", next))
	g.mode = next
}

// Reset clears the score and returns every entity to its spawn state,
// including speeds. The mode is left alone.
func (g *Game) Reset() {
	match := g.match.Get()
	match.Score = [2]int{}
	match.Exit = NoPlayer
	resetEntities(g.homes.Values(), g.rng, true)
}

// Draw renders the playfield and the overlay for the current mode.
func (g *Game) Draw(s Surface) {
	arena := g.arena.Get()
	score := g.match.Get().Score

	s.Line(arena.Width/2-1, 0, arena.Width/2-1, arena.Height, 1, White)
	s.CenteredText(strconv.Itoa(score[0]), -50, 0, 30, White)
	s.CenteredText(strconv.Itoa(score[1]), 50, 0, 30, White)

	for item := range g.drawables.Values() {
		s.FillRect(item.Bounds.Rect, item.Tint.Color)
	}

	switch g.mode.Kind {
	case ModePaused:
		s.CenteredText("PONG", 0, -100, 40, White)
		s.CenteredText("Press SPACE to play", 0, 120, 20, White)
	case ModeScored:
		if !g.mode.Scorer.Valid() {
			g.log.Fatal("scored mode names an unknown player", zap.Int("player", int(g.mode.Scorer)))
		}
		s.CenteredText("Player "+strconv.Itoa(int(g.mode.Scorer))+" Scored!", 0, -100, 20, White)
		s.CenteredText("Press SPACE to continue", 0, 100, 15, White)
		s.CenteredText("Press R to reset", 0, 125, 15, White)
	}
}

func (g *Game) Mode() Mode {
	return g.mode
}

func (g *Game) Score() [2]int {
	return g.match.Get().Score
}

// Match exposes the live match state, mainly for debugging tools.
func (g *Game) Match() *Match {
	return g.match.Get()
}

func (g *Game) Arena() Arena {
	return *g.arena.Get()
}

func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}
