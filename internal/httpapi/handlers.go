package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/analytics"
	"github.com/sandeepkv93/trackd/internal/commands"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/tracker"
)

// Service is the store surface served over HTTP.
type Service interface {
	Now() time.Time
	ListTasks(ctx context.Context) ([]tracker.TaskView, error)
	AddTask(ctx context.Context, name string) (tracker.TaskView, bool, error)
	DeleteTask(ctx context.Context, id string, confirm bool) (bool, error)
	ToggleDay(ctx context.Context, id string, day model.DayKey) (tracker.TaskView, error)
	GetStreak(ctx context.Context, id string) (model.Streak, error)
	ClaimCoins(ctx context.Context) (tracker.ClaimResult, error)
	GetProfile(ctx context.Context) (tracker.ProfileView, error)
	GetAnalyticsSnapshot(ctx context.Context) (analytics.Snapshot, error)
	Overview(ctx context.Context) (tracker.Overview, error)
	Theme(ctx context.Context) (model.Theme, error)
	SetTheme(ctx context.Context, theme model.Theme) error
	Reset(ctx context.Context) error
}

func ListTasksHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := svc.ListTasks(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		out := make([]taskDTO, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toTaskDTO(t))
		}
		c.JSON(http.StatusOK, out)
	}
}

// AddTaskHandler answers 204 when the name trims to nothing.
func AddTaskHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		view, added, err := svc.AddTask(c.Request.Context(), req.Name)
		if err != nil {
			writeError(c, log, err)
			return
		}
		if !added {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusCreated, toTaskDTO(view))
	}
}

// DeleteTaskHandler only deletes with ?confirm=true; otherwise it answers
// 204 after checking the task exists.
func DeleteTaskHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		confirm, _ := strconv.ParseBool(c.Query("confirm"))
		deleted, err := svc.DeleteTask(c.Request.Context(), c.Param("id"), confirm)
		if err != nil {
			writeError(c, log, err)
			return
		}
		if !deleted {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

func ToggleDayHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := commands.ParseDay(c.Param("day"), model.DayKeyOf(svc.Now()))
		if err != nil {
			writeError(c, log, err)
			return
		}
		view, err := svc.ToggleDay(c.Request.Context(), c.Param("id"), day)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, toTaskDTO(view))
	}
}

func StreakHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		streak, err := svc.GetStreak(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, toStreakDTO(streak))
	}
}

func ClaimHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.ClaimCoins(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"claimed": res.Claimed, "profile": toProfileDTO(res.Profile)})
	}
}

func ProfileHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetProfile(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, toProfileDTO(p))
	}
}

func AnalyticsHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.GetAnalyticsSnapshot(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func OverviewHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Overview(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, toOverviewDTO(o))
	}
}

func GetThemeHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		theme, err := svc.Theme(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"theme": theme})
	}
}

func SetThemeHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req themeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		theme := model.Theme(req.Theme)
		if err := svc.SetTheme(c.Request.Context(), theme); err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"theme": theme})
	}
}

// ResetHandler wipes tasks and profile; the theme is kept.
func ResetHandler(svc Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Reset(c.Request.Context()); err != nil {
			writeError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	var cmdErr *commands.CommandError
	switch {
	case errors.Is(err, tracker.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, tracker.ErrDayNotInWindow),
		errors.Is(err, tracker.ErrInvalidTheme),
		errors.Is(err, model.ErrInvalidDayKey),
		errors.As(err, &cmdErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
