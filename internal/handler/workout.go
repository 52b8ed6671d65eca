package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/workoutapp/backend/internal/model"
	"github.com/workoutapp/backend/internal/service"
)

type WorkoutHandler struct {
	workouts *service.WorkoutService
}

func NewWorkoutHandler(workouts *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// GetWorkout godoc
// @Summary Get a workout by id
// @Tags workouts
// @Produce json
// @Param id path int true "Workout ID"
// @Success 200 {object} model.WorkoutEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workoutID, ok := parseWorkoutID(c)
	if !ok {
		return
	}

	workout, err := h.workouts.Get(c.Request.Context(), workoutID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

// CreateWorkout godoc
// @Summary Create a workout
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateWorkoutRequest true "Workout payload"
// @Success 201 {object} model.WorkoutEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	user := GetCurrentUser(c)
	if user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in"})
		return
	}

	var req model.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	workout, err := h.workouts.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workout": workout})
}

// UpdateWorkout godoc
// @Summary Update a workout
// @Description Partial update; entries, when present, replace the existing set.
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Param request body model.UpdateWorkoutRequest true "Fields to update"
// @Success 200 {object} model.WorkoutEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	user := GetCurrentUser(c)
	if user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in to update"})
		return
	}

	workoutID, ok := parseWorkoutID(c)
	if !ok {
		return
	}

	var req model.UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	workout, err := h.workouts.Update(c.Request.Context(), workoutID, user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not authorized to update this workout"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags workouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workout ID"
// @Success 204
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	user := GetCurrentUser(c)
	if user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in to delete"})
		return
	}

	workoutID, ok := parseWorkoutID(c)
	if !ok {
		return
	}

	err := h.workouts.Delete(c.Request.Context(), workoutID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not authorized to delete this workout"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) writeError(c *gin.Context, err error) {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, service.ErrWorkoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
	default:
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("workout operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseWorkoutID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return 0, false
	}
	return id, true
}
