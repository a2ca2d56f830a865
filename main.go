package main

import (
	"flag"

	"github.com/decker502/ceilplan/pkg/app"
	"github.com/decker502/ceilplan/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	var cfg app.Config
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Disable all logging")
	flag.IntVar(&cfg.Rows, "rows", 0, "Initial grid rows (1-1000, 0 = last used)")
	flag.IntVar(&cfg.Cols, "cols", 0, "Initial grid columns (1-1000, 0 = last used)")
	flag.StringVar(&cfg.StylePath, "styles", "", "Path to a custom style YAML file")
	flag.BoolVar(&cfg.NoSave, "no-save", false, "Do not load or save editor preferences")
	flag.BoolVar(&cfg.Mute, "mute", false, "Disable audio cues")
	flag.Parse()

	app.ConfigureLogging(cfg)

	editor, err := app.NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start editor")
	}

	ebiten.SetWindowSize(config.EditorWindowWidth, config.EditorWindowHeight)
	ebiten.SetWindowTitle("Ceiling Layout Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(editor)

	if !editor.GetSceneManager().SaveOnExit() {
		log.Warn().Msg("preferences were not saved")
	}

	if runErr != nil && runErr != ebiten.Termination {
		log.Fatal().Err(runErr).Msg("editor exited with error")
	}
}
