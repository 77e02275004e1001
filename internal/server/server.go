// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/logician/internal/config"
	"github.com/mia-platform/logician/internal/info"
	ilogger "github.com/mia-platform/logician/internal/logger"
	"github.com/mia-platform/logician/levels"
	"github.com/mia-platform/logician/logger"
)

const (
	loggerName = "server"
)

// Server is the admin HTTP server exposing the configured loggers.
type Server interface {
	App() *fiber.App
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

// Store gives access to the loggers managed by the server.
type Store interface {
	Get(name string) (logger.Logger, bool)
	Loggers() config.Loggers
}

type impServer struct {
	Config

	app   *fiber.App
	store Store
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// LoggerStatus is the JSON representation of a logger.
type LoggerStatus struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	LevelName string `json:"levelName"`
}

// LevelStatus is the JSON representation of a registered level.
type LevelStatus struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
}

type setLevelRequest struct {
	Level string `json:"level"`
}

func NewServer(ctx context.Context, cfg *Config, store Store) (Server, error) {
	if cfg == nil {
		loaded, err := LoadServerConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		ErrorHandler:          errorHandler,
	})
	log := ilogger.Named(ctx, loggerName)
	app.Use(ilogger.RequestMiddlewareLogger(log, []string{"/-/"}))

	s := &impServer{
		Config: *cfg,
		app:    app,
		store:  store,
	}
	s.routes()
	return s, nil
}

func (s *impServer) routes() {
	s.app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"name":    info.AppName,
			"version": info.Version,
		})
	})

	s.app.Get("/levels", func(c *fiber.Ctx) error {
		return c.JSON(levelStatuses(levels.Default))
	})
	s.app.Get("/loggers", s.listLoggers)
	s.app.Get("/loggers/:name", s.getLogger)
	s.app.Put("/loggers/:name", s.setLoggerLevel)
	s.app.Get("/loggers/:name/levels", s.loggerLevels)
}

func (s *impServer) listLoggers(c *fiber.Ctx) error {
	loggers := s.store.Loggers()
	statuses := make([]LoggerStatus, 0, len(loggers))
	for _, name := range loggers.Names() {
		statuses = append(statuses, loggerStatus(loggers[name]))
	}
	return c.JSON(statuses)
}

func (s *impServer) lookup(c *fiber.Ctx) (logger.Logger, error) {
	name := c.Params("name")
	log, found := s.store.Get(name)
	if !found {
		return nil, fiber.NewError(http.StatusNotFound, fmt.Sprintf("logger %q not found", name))
	}
	return log, nil
}

func (s *impServer) getLogger(c *fiber.Ctx) error {
	log, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(loggerStatus(log))
}

func (s *impServer) loggerLevels(c *fiber.Ctx) error {
	log, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(levelStatuses(registryOf(log)))
}

func (s *impServer) setLoggerLevel(c *fiber.Ctx) error {
	log, err := s.lookup(c)
	if err != nil {
		return err
	}

	body := new(setLevelRequest)
	if err := c.BodyParser(body); err != nil {
		return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("invalid body: %s", err))
	}

	registry := registryOf(log)
	level, err := registry.Parse(body.Level)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	previous := log.Level()
	log.SetLevel(level)
	ilogger.FromContext(c.UserContext()).Info("logger level changed",
		"logger", log.Name(),
		"from", registry.Name(previous),
		"to", registry.Name(level),
	)
	return c.JSON(loggerStatus(log))
}

func loggerStatus(log logger.Logger) LoggerStatus {
	return LoggerStatus{
		Name:      log.Name(),
		Level:     int(log.Level()),
		LevelName: registryOf(log).Name(log.Level()),
	}
}

func levelStatuses(registry *levels.Registry) []LevelStatus {
	registered := registry.Levels()
	statuses := make([]LevelStatus, 0, len(registered))
	for _, level := range registered {
		statuses = append(statuses, LevelStatus{Level: int(level), Name: registry.Name(level)})
	}
	return statuses
}

func registryOf(log logger.Logger) *levels.Registry {
	if provider, ok := log.(interface{ Registry() *levels.Registry }); ok {
		return provider.Registry()
	}
	return levels.Default
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"statusCode": code,
		"error":      http.StatusText(code),
		"message":    strings.TrimSpace(err.Error()),
	})
}

func (s *impServer) App() *fiber.App {
	return s.app
}

func (s *impServer) Start() error {
	if err := s.app.Listen(s.Address()); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := ilogger.Named(ctx, loggerName)
	go func() {
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}
