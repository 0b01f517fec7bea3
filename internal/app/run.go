package app

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yashubustudio/cardbrowser/cardbrowser"
)

const fyneAppID = "studio.yashubu.cardbrowser"

// Run loads the configuration and catalog and starts the desktop UI.
func Run(configPath string) error {
	cfg, err := cardbrowser.LoadConfig(configPath)
	if err != nil {
		return err
	}

	panel := newLogPanel()
	logger := zap.New(zapcore.NewTee(
		cardbrowser.NewLogger(os.Stderr, cfg.LogLevel).Core(),
		cardbrowser.NewLogger(panel, cfg.LogLevel).Core(),
	))
	defer func() { _ = logger.Sync() }()

	svc, err := cardbrowser.NewService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc, panel)
	defer u.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Watch(ctx, func(cat cardbrowser.Catalog) {
		fyne.Do(func() { u.onCatalogReloaded(cat) })
	}); err != nil {
		logger.Warn("catalog watch disabled", zap.Error(err))
	}

	u.coord.Dispatch(cardbrowser.Start{})
	u.w.ShowAndRun()
	return nil
}
