// Package server is the HTTP task service that plays the remote task store
// for the board.
package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/api"
	"github.com/riordanpawley/laneboard/internal/domain"
)

// Repository is the task persistence the handlers need
type Repository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	UpdateStatus(ctx context.Context, id string, lane domain.Lane) (domain.Task, error)
}

// Options tune the service. Latency and FailureRate slow down or break status
// updates on purpose so optimistic moves and rollbacks can be watched.
type Options struct {
	Latency     time.Duration
	FailureRate float64 // 0..1, share of status updates answered with 503

	// rand is swapped in tests
	rand func() float64
}

// New builds an echo instance with middleware and routes installed
func New(repo Repository, opts Options, logger *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: api.HeaderRequestID,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, api.HeaderRequestID},
	}))

	Register(e, repo, opts, logger)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, repo Repository, opts Options, logger *logrus.Logger) {
	if opts.rand == nil {
		opts.rand = rand.Float64
	}

	e.GET(api.PathHealth, healthz())
	e.GET(api.PathTasks, listTasks(repo))
	e.GET(api.PathTasks+"/:id", getTask(repo))
	e.PATCH(api.PathTasks+"/:id/status", updateStatus(repo, logger), chaos(opts, logger))
}

// requestLogger logs one line per request through logrus
func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency,
				"request_id": v.RequestID,
			})
			switch {
			case v.Error != nil && v.Status >= http.StatusInternalServerError:
				entry.WithError(v.Error).Error("request failed")
			case v.Error != nil:
				entry.WithError(v.Error).Info("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}

// chaos delays status updates by opts.Latency and fails a share of them
func chaos(opts Options, logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Latency > 0 {
				select {
				case <-time.After(opts.Latency):
				case <-c.Request().Context().Done():
					return c.Request().Context().Err()
				}
			}
			if opts.FailureRate > 0 && opts.rand() < opts.FailureRate {
				logger.WithField("task", c.Param("id")).Debug("injecting status update failure")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Task service is busy, move not saved")
			}
			return next(c)
		}
	}
}

// errorHandler renders every error as api.ErrorResponse
func errorHandler(logger *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, "internal error"
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		case errors.Is(err, domain.ErrNotFound):
			status, msg = http.StatusNotFound, domain.UserMessage(err, "not found")
		case errors.Is(err, domain.ErrInvalidLane):
			status, msg = http.StatusUnprocessableEntity, domain.UserMessage(err, "invalid lane")
		default:
			logger.WithError(err).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, api.ErrorResponse{Error: msg})
		}
		if err != nil {
			logger.WithError(err).Warn("failed to write error response")
		}
	}
}
