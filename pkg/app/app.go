package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/orcagrid/orca-go/pkg/audio"
	"github.com/orcagrid/orca-go/pkg/cli"
	"github.com/orcagrid/orca-go/pkg/engine"
	"github.com/orcagrid/orca-go/pkg/grid"
	"github.com/orcagrid/orca-go/pkg/logger"
	"github.com/orcagrid/orca-go/pkg/operator"
	"github.com/orcagrid/orca-go/pkg/scheduler"
	"github.com/orcagrid/orca-go/pkg/session"
)

const defaultAudioSampleRate = 44100

// Application owns the wiring between the CLI config and a running grid:
// it builds the Context, the operator registry, the audio sinks, and
// drives the scheduler until interrupted or the grid shuts itself down.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New builds an Application with no configuration yet; call Run to parse
// arguments and start the grid.
func New() *Application {
	return &Application{}
}

// Run parses args, wires the grid, and drives it until ctx is cancelled,
// the configured timeout elapses, or the grid itself transitions to
// Shutdown.
func (app *Application) Run(args []string) error {
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := app.initLogger(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	app.log.Info("orca starting", "session", app.config.SessionName, "tempo", app.config.Tempo, "divisions", app.config.Divisions)

	store := session.NewFileStore(".")

	gridCtx, err := app.buildGrid(store)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}

	registry, err := app.buildRegistry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	midiSink, sinks, err := app.buildSinks()
	if err != nil {
		return fmt.Errorf("build audio sinks: %w", err)
	}

	eval := engine.NewEvaluator(registry, sinks)
	sched := scheduler.New(gridCtx, eval, app.log)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if app.config.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, app.config.Timeout)
		defer timeoutCancel()
	}

	err = scheduler.RunGroup(runCtx, sched)

	midiSink.Shutdown()
	app.autosave(gridCtx, store)

	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		return fmt.Errorf("run: %w", err)
	}

	app.log.Info("orca terminated normally")
	return nil
}

func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// buildGrid loads the named session if one was given, otherwise starts a
// fresh rows x cols grid.
func (app *Application) buildGrid(store *session.FileStore) (*grid.Context, error) {
	if app.config.SessionName == "" {
		return grid.New(app.config.Rows, app.config.Cols, app.config.Tempo, app.config.Divisions, store, app.log), nil
	}

	lines, err := store.Load(app.config.SessionName)
	if err != nil {
		app.log.Warn("could not load session, starting a fresh grid", "name", app.config.SessionName, "err", err)
		return grid.New(app.config.Rows, app.config.Cols, app.config.Tempo, app.config.Divisions, store, app.log), nil
	}

	return grid.NewFromLines(lines, app.config.Cols, app.config.Tempo, app.config.Divisions, store, app.log), nil
}

// buildRegistry loads the default operator symbol table, optionally
// overlaid with a remap file.
func (app *Application) buildRegistry() (*operator.Registry, error) {
	registry := operator.NewDefaultRegistry()
	if app.config.OperatorConfig == "" {
		return registry, nil
	}
	if err := registry.LoadSymbolConfig(app.config.OperatorConfig); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			app.log.Warn("operator config not found, using the default symbol table", "path", app.config.OperatorConfig)
			return registry, nil
		}
		return nil, fmt.Errorf("load operator config %s: %w", app.config.OperatorConfig, err)
	}
	return registry, nil
}

// buildSinks wires one shared audio context and SoundBank across the four
// note sinks, returning the MIDI sink separately so Run can flush its
// all-notes-off sweep on shutdown.
func (app *Application) buildSinks() (*audio.MIDISink, engine.Sinks, error) {
	audioCtx := ebitenaudio.NewContext(defaultAudioSampleRate)
	bank := audio.NewSoundBank(audioCtx, app.config.SoundFont, app.log)

	midiSink := audio.NewMIDISink(bank, app.log)
	ccSink := audio.NewCCSink(bank, app.log)
	synthSink := audio.NewSynthSink(audioCtx, bank, app.log)
	samplerSink := audio.NewSamplerSink(audioCtx, app.config.SampleDir, app.log)

	return midiSink, engine.Sinks{
		MIDI:    midiSink,
		Synth:   synthSink,
		Sampler: samplerSink,
		CC:      ccSink,
	}, nil
}

// autosave persists the grid under session.LastSessionName so a later run
// given that session name picks up where this one left off (a run with no
// session name starts a fresh grid). Failures are
// logged, not fatal — an interrupted run still exits cleanly.
func (app *Application) autosave(gridCtx *grid.Context, store *session.FileStore) {
	gridCtx.Mu.Lock()
	lines := gridCtx.Snapshot()
	gridCtx.Mu.Unlock()

	if err := store.Save(session.LastSessionName, lines); err != nil {
		app.log.Warn("autosave failed", "err", err)
	}
}
