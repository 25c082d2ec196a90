package main

import (
	"context"
	"fmt"
	"runtime"

	"imagelab/internal/config"
	"imagelab/internal/controllers"
	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/monitor"
	"imagelab/internal/services"
	"imagelab/internal/shutdown"
	"imagelab/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// previewMaxDimension caps the size of decoded previews.
const previewMaxDimension = 1600

// Application wires the window, controllers and service client together.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.MainController
	view       *views.MainView

	client     *services.ImageServiceClient
	processing *services.ProcessingService
	monitor    *monitor.Monitor
	shutdown   *shutdown.Manager
}

// NewApplication creates every component from cfg.
func NewApplication(cfg *config.Config) (*Application, error) {
	appLogger := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"config":     cfg.String(),
		"go_version": runtime.Version(),
	})

	client := services.NewImageServiceClient(services.ClientConfig{
		BaseURL:      cfg.Service.BaseURL,
		CompressPath: cfg.Service.CompressPath,
		FilterPath:   cfg.Service.FilterPath,
	}, appLogger)
	processing := services.NewProcessingService(client, models.NewStatsRepository(), appLogger)

	mainView := views.NewMainView(window, views.DefaultNavItems())

	mainController, err := controllers.NewMainController(
		processing,
		mainView,
		mainView.Compression(),
		mainView.Filtering(),
		controllers.Dependencies{
			Decoder:       services.NewImageDecoder(previewMaxDimension),
			Bus:           controllers.NewEventBus(),
			Logger:        appLogger,
			Timeout:       cfg.Service.Timeout,
			TransportHint: cfg.Service.StartHint,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	manager := shutdown.NewManager(appLogger)
	manager.Register("http client", client)
	manager.Register("controller", mainController)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: mainController,
		view:       mainView,
		client:     client,
		processing: processing,
		monitor:    monitor.New(cfg.MonitorInterval, processing, appLogger),
		shutdown:   manager,
	}
	application.setupWindowEvents()

	return application, nil
}

// Run shows the window and blocks until the application quits.
func (a *Application) Run(ctx context.Context) {
	a.controller.Start()
	a.view.Show()

	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go func() {
		select {
		case <-ctx.Done():
			a.shutdown.Shutdown()
			fyne.Do(a.fyneApp.Quit)
		case <-a.shutdown.Done():
		}
	}()

	go a.monitor.Run(a.shutdown.Context())

	a.fyneApp.Run()
	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}

func (a *Application) setupWindowEvents() {
	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
		go a.shutdown.Shutdown()
	})
}
