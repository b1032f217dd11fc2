// Package app wires the command line, logger, game data loader, VM and
// window into the runner's main flow.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goforj/godump"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/asset"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/cli"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/field"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gamedata"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/instance"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/logger"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/render"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/render/ebitenrender"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/vm"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/window"
)

// Application is the runner's main flow.
type Application struct {
	config *cli.Config
	log    *slog.Logger
	game   *vm.Game
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run parses args, loads the game and runs it to completion.
func (app *Application) Run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if config.ShowHelp {
		cli.PrintHelp()
		return nil
	}
	if config.GamePath == "" {
		cli.PrintHelp()
		return fmt.Errorf("no game file given")
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()
	app.log.Info("Application started", "game", config.GamePath)

	kernel := vm.NewKernel()
	bundle, err := gamedata.LoadFile(config.GamePath, kernel)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	app.log.Info("Game loaded",
		"objects", bundle.Objects.Len(),
		"rooms", bundle.Rooms.Len(),
		"scripts", bundle.Scripts.Len(),
		"fields", bundle.FieldNames.Len())

	if config.Headless {
		err = app.runHeadless(bundle, kernel)
	} else {
		err = app.runWindowed(bundle, kernel)
	}
	if config.Dump && app.game != nil {
		godump.Dump(snapshot(app.game))
	}
	if err != nil {
		return err
	}
	app.log.Info("Application terminated normally", "steps", app.game.Steps())
	return nil
}

// gameOptions translates the command line into VM options shared by both
// run modes.
func (app *Application) gameOptions(kernel *vm.Kernel) []vm.Option {
	opts := []vm.Option{
		vm.WithKernel(kernel),
		vm.WithLogger(app.log),
		vm.WithConfig(vm.Config{
			UninitFieldsAreZero: app.config.UninitFieldsAreZero,
			UninitArgsAreZero:   app.config.UninitArgsAreZero,
		}),
	}
	if wd, err := os.Getwd(); err == nil {
		program, _ := filepath.Abs(filepath.Dir(app.config.GamePath))
		opts = append(opts, vm.WithDirectories(program, wd, os.TempDir()))
	}
	if !app.config.SpoofTime.IsZero() {
		opts = append(opts, vm.WithSpoofedTime(app.config.SpoofTime))
	}
	return opts
}

func (app *Application) runHeadless(bundle *asset.Bundle, kernel *vm.Kernel) error {
	recorder := render.NewRecorder(render.WithRecorderLogger(app.log), render.WithLogOperations(app.config.LogLevel == "debug"))
	opts := append(app.gameOptions(kernel), vm.WithRenderer(recorder), vm.WithTimeout(app.config.Timeout))
	app.game = vm.New(bundle, opts...)

	app.log.Info("Running headless", "max_steps", app.config.MaxSteps)
	if err := app.game.Run(context.Background(), app.config.MaxSteps); err != nil {
		return fmt.Errorf("game failed after %d steps: %w", app.game.Steps(), err)
	}
	return nil
}

func (app *Application) runWindowed(bundle *asset.Bundle, kernel *vm.Kernel) error {
	renderer := ebitenrender.New(bundle.Sprites)
	app.game = vm.New(bundle, append(app.gameOptions(kernel), vm.WithRenderer(renderer))...)

	defer func() {
		if err := app.game.CloseFiles(); err != nil {
			app.log.Warn("failed to close text files", "error", err)
		}
	}()
	if err := window.Run(app.game, renderer, app.config.Timeout); err != nil {
		return fmt.Errorf("game failed after %d steps: %w", app.game.Steps(), err)
	}
	return nil
}

// instanceSummary is the --dump view of one live instance.
type instanceSummary struct {
	ID     int32
	Object string
	X, Y   float64
	Depth  float64
	Fields map[string]string
}

// snapshot summarises the live instances in insertion order.
func snapshot(game *vm.Game) []instanceSummary {
	var out []instanceSummary
	it := game.Instances.IterByInsertion()
	for h, ok := it.Next(game.Instances); ok; h, ok = it.Next(game.Instances) {
		out = append(out, summarise(game, game.Instances.Get(h)))
	}
	return out
}

func summarise(game *vm.Game, inst *instance.Instance) instanceSummary {
	s := instanceSummary{
		ID:     inst.ID,
		X:      inst.X.Float(),
		Y:      inst.Y.Float(),
		Depth:  inst.Depth.Float(),
		Fields: make(map[string]string),
	}
	if obj, ok := game.Objects.Get(inst.ObjectIndex); ok {
		s.Object = obj.Name
	}
	for _, id := range inst.Fields.IDs() {
		name := game.FieldNames.Name(id)
		inst.Fields.Field(id).Indices(func(index uint32, v gml.Value) {
			s.Fields[elementName(name, index)] = v.String()
		})
	}
	return s
}

// elementName renders one array element the way GML code would write it.
func elementName(name string, index uint32) string {
	i, j := field.Split(index)
	switch {
	case index == 0:
		return name
	case i == 0:
		return fmt.Sprintf("%s[%d]", name, j)
	default:
		return fmt.Sprintf("%s[%d, %d]", name, i, j)
	}
}
