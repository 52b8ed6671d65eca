package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/workoutapp/backend/internal/model"
)

func (db *Postgres) CreateWorkout(ctx context.Context, workout *model.Workout) (*model.Workout, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO workouts (user_id, title, description, duration_minutes, calories_burned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	created := *workout
	err = tx.QueryRow(ctx, query,
		workout.UserID, workout.Title, workout.Description, workout.DurationMinutes, workout.CaloriesBurned,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}

	created.Entries, err = insertEntries(ctx, tx, created.ID, workout.Entries)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

func (db *Postgres) GetWorkoutByID(ctx context.Context, workoutID int64) (*model.Workout, error) {
	query := `
		SELECT id, user_id, title, description, duration_minutes, calories_burned, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`
	var workout model.Workout
	err := db.Pool.QueryRow(ctx, query, workoutID).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Title,
		&workout.Description,
		&workout.DurationMinutes,
		&workout.CaloriesBurned,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	workout.Entries, err = db.getEntries(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// GetWorkoutOwner returns only the owning user id, for ownership checks that
// do not need the full row.
func (db *Postgres) GetWorkoutOwner(ctx context.Context, workoutID int64) (int64, error) {
	var userID int64
	err := db.Pool.QueryRow(ctx, `SELECT user_id FROM workouts WHERE id = $1`, workoutID).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// UpdateWorkout writes the already-merged workout row. When replaceEntries is
// set the existing entries are dropped and workout.Entries inserted in their
// place, all in one transaction.
func (db *Postgres) UpdateWorkout(ctx context.Context, workout *model.Workout, replaceEntries bool) (*model.Workout, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		UPDATE workouts
		SET title = $2, description = $3, duration_minutes = $4, calories_burned = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	updated := *workout
	err = tx.QueryRow(ctx, query,
		workout.ID, workout.Title, workout.Description, workout.DurationMinutes, workout.CaloriesBurned,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if replaceEntries {
		if _, err := tx.Exec(ctx, `DELETE FROM workout_entries WHERE workout_id = $1`, workout.ID); err != nil {
			return nil, err
		}
		updated.Entries, err = insertEntries(ctx, tx, workout.ID, workout.Entries)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if !replaceEntries {
		updated.Entries, err = db.getEntries(ctx, workout.ID)
		if err != nil {
			return nil, err
		}
	}
	return &updated, nil
}

func (db *Postgres) DeleteWorkout(ctx context.Context, workoutID int64) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, workoutID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func insertEntries(ctx context.Context, tx pgx.Tx, workoutID int64, entries []model.WorkoutEntry) ([]model.WorkoutEntry, error) {
	query := `
		INSERT INTO workout_entries (workout_id, exercise_name, sets, reps, duration_seconds, weight, notes, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	inserted := make([]model.WorkoutEntry, 0, len(entries))
	for _, entry := range entries {
		err := tx.QueryRow(ctx, query,
			workoutID, entry.ExerciseName, entry.Sets, entry.Reps, entry.DurationSeconds,
			entry.Weight, entry.Notes, entry.OrderIndex,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, entry)
	}
	return inserted, nil
}

func (db *Postgres) getEntries(ctx context.Context, workoutID int64) ([]model.WorkoutEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, exercise_name, sets, reps, duration_seconds, weight, notes, order_index, created_at
		FROM workout_entries
		WHERE workout_id = $1
		ORDER BY order_index ASC
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.WorkoutEntry, 0)
	for rows.Next() {
		var e model.WorkoutEntry
		if err := rows.Scan(
			&e.ID,
			&e.ExerciseName,
			&e.Sets,
			&e.Reps,
			&e.DurationSeconds,
			&e.Weight,
			&e.Notes,
			&e.OrderIndex,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
