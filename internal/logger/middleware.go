// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	RequestIDHeaderName    = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

type fiberLoggingContext struct {
	c          *fiber.Ctx
	handlerErr error
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}

// GetReqID returns the request id sent by the client or a new random one.
func GetReqID(c *fiber.Ctx) string {
	if requestID := c.Get(RequestIDHeaderName, ""); requestID != "" {
		return requestID
	}
	// e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}

func (flc *fiberLoggingContext) requestArgs() []any {
	return []any{
		"method", flc.c.Method(),
		"path", string(flc.c.Request().URI().RequestURI()),
		"userAgent", flc.c.Get("user-agent", ""),
		"hostname", removePort(string(flc.c.Request().Host())),
		"forwardedHost", flc.c.Get(forwardedHostHeaderKey, ""),
		"ip", flc.c.Get(forwardedForHeaderKey, ""),
	}
}

func (flc *fiberLoggingContext) fiberError() *fiber.Error {
	if fiberErr, ok := flc.handlerErr.(*fiber.Error); ok {
		return fiberErr
	}
	return nil
}

func (flc *fiberLoggingContext) bodySize() int {
	if fiberErr := flc.fiberError(); fiberErr != nil {
		return len(fiberErr.Error())
	}

	if content := flc.c.GetRespHeader("Content-Length"); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			return length
		}
	}
	return len(flc.c.Response().Body())
}

func (flc *fiberLoggingContext) statusCode() int {
	if fiberErr := flc.fiberError(); fiberErr != nil {
		return fiberErr.Code
	}
	return flc.c.Response().StatusCode()
}

// RequestMiddlewareLogger is a fiber middleware logging every request whose path does
// not start with one of excludedPrefix. The request logger, named after the request id,
// travels in the user context of the request.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) func(*fiber.Ctx) error {
	return func(fiberCtx *fiber.Ctx) error {
		flc := &fiberLoggingContext{c: fiberCtx}

		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(fiberCtx.Path(), prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()
		requestID := GetReqID(fiberCtx)
		fiberCtx.Set(RequestIDHeaderName, requestID)

		requestLogger := logger.WithName("request").WithName(requestID)
		fiberCtx.SetUserContext(WithContext(fiberCtx.UserContext(), requestLogger))

		requestLogger.Trace(IncomingRequestMessage, flc.requestArgs()...)
		err := fiberCtx.Next()
		flc.handlerErr = err

		args := append(flc.requestArgs(),
			"statusCode", flc.statusCode(),
			"bytes", flc.bodySize(),
			"responseTime", float64(time.Since(start).Milliseconds()),
		)
		requestLogger.Info(RequestCompletedMessage, args...)
		return err
	}
}
