// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the weather-dash web server.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/weather-dash/internal/config"
	"github.com/wneessen/weather-dash/internal/i18n"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/service"
	"github.com/wneessen/weather-dash/internal/template"
	"github.com/wneessen/weather-dash/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// Environment overrides from a .env file in the working directory
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to load .env file", logger.Err(err))
		os.Exit(1)
	}

	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	if tag, ok := i18n.Resolve(conf.Locale); !ok {
		log.Warn("no translation catalogue for the configured locale, falling back to English",
			"locale", conf.Locale, "fallback", tag.String())
	}
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize weather-dash service", logger.Err(err))
		os.Exit(1)
	}
	tpls, err := template.New(serv.Presenter())
	if err != nil {
		log.Error("failed to parse page templates", logger.Err(err))
		os.Exit(1)
	}
	server := web.New(serv, tpls, log)

	// Start the service loop
	log.Info(t.Get("starting weather-dash service"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx, server.Handler()); err != nil {
		log.Error(t.Get("failed to run weather-dash service"), logger.Err(err))
		os.Exit(1)
	}
	log.Info(t.Get("shutting down weather-dash service"))
}

// loadConfig reads the config file at path. Without a path the config file is looked up in the
// user config directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Discover()
	}
	return config.NewFromFile(filepath.Dir(path), filepath.Base(path))
}
