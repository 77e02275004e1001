// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/logician/internal/server"
)

var _ server.Server = &Server{}

// Server records its lifecycle and exposes the store it was built with, without
// listening on any port.
type Server struct {
	tb    testing.TB
	Store server.Store

	app         *fiber.App
	startedChan chan struct{}
	closedChan  chan struct{}
	closeOnce   sync.Once
}

func NewFakeServer(tb testing.TB, store server.Store) *Server {
	tb.Helper()

	return &Server{
		tb:          tb,
		Store:       store,
		app:         fiber.New(fiber.Config{DisableStartupMessage: true}),
		startedChan: make(chan struct{}),
		closedChan:  make(chan struct{}),
	}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	s.tb.Helper()
	close(s.startedChan)
	<-s.closedChan
	return nil
}

func (s *Server) Stop() error {
	s.tb.Helper()
	s.closeOnce.Do(func() { close(s.closedChan) })
	return nil
}

func (s *Server) StartAsync(_ context.Context) {
	s.tb.Helper()
	go func() { _ = s.Start() }()
}

func (s *Server) StartedServer() <-chan struct{} {
	s.tb.Helper()
	return s.startedChan
}

func (s *Server) StoppedServer() <-chan struct{} {
	s.tb.Helper()
	return s.closedChan
}
