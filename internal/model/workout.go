package model

import "time"

type Workout struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	DurationMinutes int            `json:"duration_minutes"`
	CaloriesBurned  int            `json:"calories_burned"`
	Entries         []WorkoutEntry `json:"entries"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type WorkoutEntry struct {
	ID              int64     `json:"id"`
	ExerciseName    string    `json:"exercise_name"`
	Sets            int       `json:"sets"`
	Reps            *int      `json:"reps,omitempty"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	Weight          *float64  `json:"weight,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	OrderIndex      int       `json:"order_index"`
	CreatedAt       time.Time `json:"created_at"`
}

type WorkoutEntryRequest struct {
	ExerciseName    string   `json:"exercise_name"`
	Sets            int      `json:"sets"`
	Reps            *int     `json:"reps"`
	DurationSeconds *int     `json:"duration_seconds"`
	Weight          *float64 `json:"weight"`
	Notes           string   `json:"notes"`
	OrderIndex      int      `json:"order_index"`
}

type CreateWorkoutRequest struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	DurationMinutes int                   `json:"duration_minutes"`
	CaloriesBurned  int                   `json:"calories_burned"`
	Entries         []WorkoutEntryRequest `json:"entries"`
}

// UpdateWorkoutRequest uses pointer fields so absent and zero values can be
// told apart; only present fields are applied.
type UpdateWorkoutRequest struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	DurationMinutes *int                   `json:"duration_minutes"`
	CaloriesBurned  *int                   `json:"calories_burned"`
	Entries         *[]WorkoutEntryRequest `json:"entries"`
}
