package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/api"
	"github.com/riordanpawley/laneboard/internal/domain"
)

const statusBodyMaxSize = 4 << 10

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func listTasks(repo Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}
		tasks, err := repo.List(c.Request().Context(), filter)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.TasksResponse{Tasks: tasks})
	}
}

func getTask(repo Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := repo.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

func updateStatus(repo Repository, logger *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, statusBodyMaxSize))
		dec.DisallowUnknownFields()
		var req api.StatusRequest
		if err := dec.Decode(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if !req.Status.Valid() {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("unknown lane %q", req.Status))
		}

		task, err := repo.UpdateStatus(c.Request().Context(), id, req.Status)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"task": id, "lane": req.Status}).Info("task moved")
		return c.JSON(http.StatusOK, task)
	}
}

// parseFilter reads q, lane and assignee. lane may repeat or hold a
// comma-separated list.
func parseFilter(c echo.Context) (domain.Filter, error) {
	f := domain.Filter{
		Query:    strings.TrimSpace(c.QueryParam(api.ParamQuery)),
		Assignee: strings.TrimSpace(c.QueryParam(api.ParamAssignee)),
	}
	for _, raw := range c.QueryParams()[api.ParamLane] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			lane, ok := domain.ParseLane(part)
			if !ok {
				return domain.Filter{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown lane %q", part))
			}
			f.Lanes = append(f.Lanes, lane)
		}
	}
	return f, nil
}
