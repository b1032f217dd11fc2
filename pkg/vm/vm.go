// Package vm runs GML instruction trees against the state of a game: the
// instance list, globals, room and game-wide variables.
//
// Execution is single-threaded. One Game owns all of its state and every
// handler runs to completion before the next one starts.
package vm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/input"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/logger"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/particle"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/render"
)

// MaxCallDepth is the deepest script recursion allowed before the call fails.
const MaxCallDepth = 1000

// Config holds the policies that change how the VM treats uninitialized
// reads. Both are off by default, which makes such reads errors.
type Config struct {
	UninitFieldsAreZero bool
	UninitArgsAreZero   bool
}

// ExtensionCaller dispatches calls to functions exported by extension
// packages.
type ExtensionCaller interface {
	CallExtension(id int, name string, args []gml.Value) (gml.Value, error)
}

// Game is the whole runtime state of one running game.
type Game struct {
	config Config
	log    *slog.Logger

	Instances *instance.List

	Sprites     *asset.Table[asset.Sprite]
	Backgrounds *asset.Table[asset.Background]
	Paths       *asset.Table[asset.Path]
	Scripts     *asset.Table[asset.Script]
	Fonts       *asset.Table[asset.Font]
	Timelines   *asset.Table[asset.Timeline]
	Objects     *asset.Table[asset.Object]
	Rooms       *asset.Table[asset.Room]
	RoomOrder   []int32
	Constants   []gml.Value
	FieldNames  *field.Names

	Globals    *field.Bag
	GlobalVars map[int]struct{}

	Room        RoomState
	pendingRoom int32

	Score         int32
	Lives         int32
	Health        gml.Real
	ShowScore     bool
	ShowLives     bool
	ShowHealth    bool
	CaptionScore  string
	CaptionLives  string
	CaptionHealth string

	TransitionKind  int32
	TransitionSteps int32
	CursorSprite    int32
	ErrorOccurred   bool
	ErrorLast       string
	DebugMode       bool
	GameID          int32
	FPS             int32

	ProgramDirectory string
	WorkingDirectory string
	TempDirectory    string

	Input      *input.State
	Particles  *particle.Manager
	Random     *Random
	Renderer   render.Renderer
	Kernel     *Kernel
	Extensions ExtensionCaller

	DrawColour uint32
	DrawAlpha  gml.Real

	clock          clock
	files          *textFiles
	lastInstanceID int32
	callDepth      int
	steps          int

	running bool
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// Option is a functional option for configuring a Game.
type Option func(*Game)

// WithConfig sets the uninitialized-read policies.
func WithConfig(cfg Config) Option {
	return func(g *Game) {
		g.config = cfg
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}

// WithRenderer sets the sink for draw calls. Without one, draw events run
// but nothing is drawn.
func WithRenderer(r render.Renderer) Option {
	return func(g *Game) {
		g.Renderer = r
	}
}

// WithKernel sets the function table. It must be the table the game's code
// was compiled against.
func WithKernel(k *Kernel) Option {
	return func(g *Game) {
		g.Kernel = k
	}
}

// WithExtensions sets the extension function dispatcher.
func WithExtensions(e ExtensionCaller) Option {
	return func(g *Game) {
		g.Extensions = e
	}
}

// WithInput shares an input state with the window that feeds it.
func WithInput(s *input.State) Option {
	return func(g *Game) {
		g.Input = s
	}
}

// WithSpoofedTime makes every time read derive from a clock that starts at
// start and advances by one frame per step.
func WithSpoofedTime(start time.Time) Option {
	return func(g *Game) {
		g.clock = newSpoofedClock(start)
	}
}

// WithDirectories sets program_directory, working_directory and
// temp_directory. Relative file names resolve against the working
// directory.
func WithDirectories(program, working, temp string) Option {
	return func(g *Game) {
		g.ProgramDirectory = program
		g.WorkingDirectory = working
		g.TempDirectory = temp
	}
}

// WithRandomSeed fixes the initial seed of the random generator. Without
// it the seed is taken from the game clock.
func WithRandomSeed(seed int32) Option {
	return func(g *Game) {
		g.Random = NewRandom(seed)
	}
}

// WithTimeout stops Run after the given duration.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Game) {
		g.timeout = timeout
	}
}

// New creates a game from compiled assets. No room is loaded yet; call
// Start or LoadRoom.
func New(bundle *asset.Bundle, opts ...Option) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		log:            logger.GetLogger(),
		Instances:      instance.NewList(),
		Sprites:        bundle.Sprites,
		Backgrounds:    bundle.Backgrounds,
		Paths:          bundle.Paths,
		Scripts:        bundle.Scripts,
		Fonts:          bundle.Fonts,
		Timelines:      bundle.Timelines,
		Objects:        bundle.Objects,
		Rooms:          bundle.Rooms,
		RoomOrder:      bundle.RoomOrder,
		Constants:      bundle.Constants,
		FieldNames:     bundle.FieldNames,
		Globals:        field.NewBag(),
		GlobalVars:     make(map[int]struct{}),
		Room:           newRoomState(),
		pendingRoom:    noRoomChange,
		Lives:          -1,
		Health:         100,
		ShowScore:      true,
		ShowLives:      false,
		ShowHealth:     false,
		CaptionScore:   "Score: ",
		CaptionLives:   "Lives: ",
		CaptionHealth:  "Health: ",
		CursorSprite:   -1,
		GameID:         bundle.GameID,
		Input:          input.NewState(),
		Particles:      particle.NewManager(),
		DrawAlpha:      1,
		clock:          newRealClock(),
		files:          newTextFiles(),
		lastInstanceID: gml.InstanceIDBase,
		ctx:            ctx,
		cancel:         cancel,
	}
	if g.FieldNames == nil {
		g.FieldNames = field.NewNames()
	}

	for _, opt := range opts {
		opt(g)
	}
	if !asset.Linked(g.Objects) {
		// Every object still identifies as itself when linking fails.
		if err := asset.LinkObjects(g.Objects); err != nil {
			g.log.Warn("object parents not linked", "error", err)
		}
	}
	if g.Kernel == nil {
		g.Kernel = NewKernel()
	}
	if g.Random == nil {
		g.Random = NewRandom(int32(g.clock.now().UnixNano()))
	}
	return g
}

// Config returns the active policies.
func (g *Game) Config() Config { return g.config }

// Logger returns the game's logger.
func (g *Game) Logger() *slog.Logger { return g.log }

// Start loads the first room in the room order and fires the game start
// event.
func (g *Game) Start() error {
	if len(g.RoomOrder) == 0 {
		return gml.NewEndOfRoomOrder()
	}
	if err := g.LoadRoom(g.RoomOrder[0]); err != nil {
		return err
	}
	return g.RunOtherEvent(asset.OtherGameStart)
}

// Run starts the game and steps it until ctx is cancelled, the timeout
// expires, Stop is called, or maxSteps steps have run (0 means no limit).
// Steps are paced at room_speed unless the clock is spoofed.
func (g *Game) Run(ctx context.Context, maxSteps int) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return fmt.Errorf("game is already running")
	}
	g.running = true
	g.mu.Unlock()
	defer func() {
		if err := g.CloseFiles(); err != nil {
			g.log.Warn("failed to close text files", "error", err)
		}
		g.mu.Lock()
		g.running = false
		g.mu.Unlock()
	}()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.log.Info("game started", "rooms", len(g.RoomOrder), "max_steps", maxSteps, "timeout", g.timeout)
	if err := g.Start(); err != nil {
		return err
	}

	for maxSteps == 0 || g.steps < maxSteps {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				g.log.Info("game timed out", "steps", g.steps)
			}
			return nil
		case <-g.ctx.Done():
			g.log.Info("game stopped", "steps", g.steps)
			return nil
		default:
		}

		frameStart := time.Now()
		if err := g.Step(); err != nil {
			if gml.IsKind(err, gml.ErrEndOfRoomOrder) {
				g.log.Info("reached end of room order", "steps", g.steps)
				return nil
			}
			return err
		}
		if !g.clock.spoofed {
			if wait := g.frameDuration() - time.Since(frameStart); wait > 0 {
				time.Sleep(wait)
			}
		}
	}
	g.log.Info("step limit reached", "steps", g.steps)
	return nil
}

// Stop asks a running Run loop to return.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.cancel()
		g.log.Info("game stop requested")
	}
}

// Steps returns the number of completed steps.
func (g *Game) Steps() int { return g.steps }

func (g *Game) frameDuration() time.Duration {
	speed := g.Room.Speed
	if speed <= 0 {
		speed = 30
	}
	return time.Second / time.Duration(speed)
}

func (g *Game) isGlobalVar(id int) bool {
	_, ok := g.GlobalVars[id]
	return ok
}

func (g *Game) uninitField(id int, index uint32) (gml.Value, error) {
	if g.config.UninitFieldsAreZero {
		return gml.Value{}, nil
	}
	return gml.Value{}, gml.NewUninitializedVariable(g.FieldNames.Name(id), index)
}

func (g *Game) uninitVariable(v gml.InstanceVariable, index uint32) (gml.Value, error) {
	if g.config.UninitFieldsAreZero {
		return gml.Value{}, nil
	}
	return gml.Value{}, gml.NewUninitializedVariable(v.String(), index)
}

// identities returns the set of object ids that identify as object, or an
// empty set when the object does not exist.
func (g *Game) identities(object int32) map[int32]struct{} {
	if obj, ok := g.Objects.Get(object); ok {
		return obj.Children
	}
	return map[int32]struct{}{}
}
