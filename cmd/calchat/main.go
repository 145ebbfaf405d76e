package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	assistant "github.com/koscakluka/calchat/core"
	"github.com/koscakluka/calchat/core/audio/miniaudio"
	"github.com/koscakluka/calchat/core/audio/portaudio"
	"github.com/koscakluka/calchat/core/capture"
	"github.com/koscakluka/calchat/core/exchange"
	"github.com/koscakluka/calchat/core/playback"
	"github.com/koscakluka/calchat/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	printSchema := flag.Bool("config-schema", false, "print the config JSON schema and exit")
	logPath := flag.String("log-file", "calchat.log", "path of the log file")
	flag.Parse()

	if *printSchema {
		schema, err := config.Schema()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg.Logging, *logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	exchangeClient := exchange.NewClient(cfg.Backend.URL)

	recorder, player, closeAudio := setupAudio(cfg)
	defer closeAudio()

	opts := []assistant.Option{assistant.WithExchangeClient(exchangeClient)}
	if recorder != nil {
		opts = append(opts, assistant.WithRecorder(recorder))
	}

	a := assistant.New(opts...)
	defer a.Close()

	program := tea.NewProgram(newModel(a, player), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// setupAudio opens the configured audio backend. Device failures degrade the
// session to text only rather than aborting it.
func setupAudio(cfg *config.Config) (*capture.Recorder, *playback.Player, func()) {
	noop := func() {}

	switch cfg.Audio.Backend {
	case "portaudio":
		client, err := portaudio.NewClient(cfg.Audio.BufferSize)
		if err != nil {
			slog.Warn("portaudio unavailable, voice input disabled", "error", err)
			return nil, nil, noop
		}

		recorder, err := capture.NewRecorder(cfg.Backend.URL, func(context.Context) (capture.Device, error) {
			return client, nil
		})
		if err != nil {
			client.Close()
			slog.Warn("recorder unavailable, voice input disabled", "error", err)
			return nil, nil, noop
		}
		return recorder, nil, client.Close

	default:
		client, err := miniaudio.NewClient()
		if err != nil {
			slog.Warn("miniaudio unavailable, voice input disabled", "error", err)
			return nil, nil, noop
		}

		recorder, err := capture.NewRecorder(cfg.Backend.URL, func(context.Context) (capture.Device, error) {
			return client, nil
		})
		if err != nil {
			client.Close()
			slog.Warn("recorder unavailable, voice input disabled", "error", err)
			return nil, nil, noop
		}
		return recorder, playback.NewPlayer(client), client.Close
	}
}

// setupLogging points slog at a file so log lines do not corrupt the
// terminal UI.
func setupLogging(cfg config.LoggingConfig, path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(file, handlerOpts)
	} else {
		handler = slog.NewTextHandler(file, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	return file, nil
}
