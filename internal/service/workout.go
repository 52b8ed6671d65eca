package service

import (
	"context"
	"errors"

	"github.com/workoutapp/backend/internal/db"
	"github.com/workoutapp/backend/internal/model"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrNotOwner        = errors.New("not the workout owner")
)

type WorkoutStore interface {
	CreateWorkout(ctx context.Context, workout *model.Workout) (*model.Workout, error)
	GetWorkoutByID(ctx context.Context, workoutID int64) (*model.Workout, error)
	GetWorkoutOwner(ctx context.Context, workoutID int64) (int64, error)
	UpdateWorkout(ctx context.Context, workout *model.Workout, replaceEntries bool) (*model.Workout, error)
	DeleteWorkout(ctx context.Context, workoutID int64) error
}

type WorkoutService struct {
	store WorkoutStore
}

func NewWorkoutService(store WorkoutStore) *WorkoutService {
	return &WorkoutService{store: store}
}

func (s *WorkoutService) Create(ctx context.Context, userID int64, req model.CreateWorkoutRequest) (*model.Workout, error) {
	if err := validateCreateWorkoutRequest(req); err != nil {
		return nil, err
	}

	workout := &model.Workout{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Entries:         entriesFromRequest(req.Entries),
	}
	return s.store.CreateWorkout(ctx, workout)
}

func (s *WorkoutService) Get(ctx context.Context, workoutID int64) (*model.Workout, error) {
	workout, err := s.store.GetWorkoutByID(ctx, workoutID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Update applies a partial update. Absent fields keep their current value;
// entries, when present, replace the existing set wholesale.
func (s *WorkoutService) Update(ctx context.Context, workoutID, userID int64, req model.UpdateWorkoutRequest) (*model.Workout, error) {
	existing, err := s.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ValidationError("title cannot be empty")
		}
		if len(*req.Title) > 255 {
			return nil, ValidationError("title cannot be greater than 255 characters")
		}
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ValidationError("duration_minutes must be greater than 0")
		}
		existing.DurationMinutes = *req.DurationMinutes
	}
	if req.CaloriesBurned != nil {
		if *req.CaloriesBurned < 0 {
			return nil, ValidationError("calories_burned cannot be negative")
		}
		existing.CaloriesBurned = *req.CaloriesBurned
	}

	replaceEntries := req.Entries != nil
	if replaceEntries {
		if err := validateEntries(*req.Entries); err != nil {
			return nil, err
		}
		existing.Entries = entriesFromRequest(*req.Entries)
	}

	return s.store.UpdateWorkout(ctx, existing, replaceEntries)
}

func (s *WorkoutService) Delete(ctx context.Context, workoutID, userID int64) error {
	ownerID, err := s.store.GetWorkoutOwner(ctx, workoutID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrNotOwner
	}

	err = s.store.DeleteWorkout(ctx, workoutID)
	if db.IsNoRows(err) {
		return ErrWorkoutNotFound
	}
	return err
}

func validateCreateWorkoutRequest(req model.CreateWorkoutRequest) error {
	if req.Title == "" {
		return ValidationError("title is required")
	}
	if len(req.Title) > 255 {
		return ValidationError("title cannot be greater than 255 characters")
	}
	if req.DurationMinutes <= 0 {
		return ValidationError("duration_minutes must be greater than 0")
	}
	if req.CaloriesBurned < 0 {
		return ValidationError("calories_burned cannot be negative")
	}
	return validateEntries(req.Entries)
}

func validateEntries(entries []model.WorkoutEntryRequest) error {
	for _, entry := range entries {
		if entry.ExerciseName == "" {
			return ValidationError("exercise_name is required")
		}
		if entry.Sets < 1 {
			return ValidationError("sets must be at least 1")
		}
		if (entry.Reps == nil) == (entry.DurationSeconds == nil) {
			return ValidationError("entry must have either reps or duration_seconds, but not both")
		}
	}
	return nil
}

func entriesFromRequest(reqs []model.WorkoutEntryRequest) []model.WorkoutEntry {
	entries := make([]model.WorkoutEntry, 0, len(reqs))
	for _, r := range reqs {
		entries = append(entries, model.WorkoutEntry{
			ExerciseName:    r.ExerciseName,
			Sets:            r.Sets,
			Reps:            r.Reps,
			DurationSeconds: r.DurationSeconds,
			Weight:          r.Weight,
			Notes:           r.Notes,
			OrderIndex:      r.OrderIndex,
		})
	}
	return entries
}
