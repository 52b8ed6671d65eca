package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/workoutapp/backend/internal/model"
)

type fakeWorkoutStore struct {
	nextID   int64
	workouts map[int64]*model.Workout
}

func newFakeWorkoutStore() *fakeWorkoutStore {
	return &fakeWorkoutStore{workouts: make(map[int64]*model.Workout)}
}

func (s *fakeWorkoutStore) CreateWorkout(ctx context.Context, workout *model.Workout) (*model.Workout, error) {
	s.nextID++
	created := *workout
	created.ID = s.nextID
	s.workouts[created.ID] = &created
	return &created, nil
}

func (s *fakeWorkoutStore) GetWorkoutByID(ctx context.Context, workoutID int64) (*model.Workout, error) {
	if workout, ok := s.workouts[workoutID]; ok {
		copied := *workout
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeWorkoutStore) GetWorkoutOwner(ctx context.Context, workoutID int64) (int64, error) {
	if workout, ok := s.workouts[workoutID]; ok {
		return workout.UserID, nil
	}
	return 0, pgx.ErrNoRows
}

func (s *fakeWorkoutStore) UpdateWorkout(ctx context.Context, workout *model.Workout, replaceEntries bool) (*model.Workout, error) {
	existing, ok := s.workouts[workout.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	updated := *workout
	if !replaceEntries {
		updated.Entries = existing.Entries
	}
	s.workouts[workout.ID] = &updated
	copied := updated
	return &copied, nil
}

func (s *fakeWorkoutStore) DeleteWorkout(ctx context.Context, workoutID int64) error {
	if _, ok := s.workouts[workoutID]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.workouts, workoutID)
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func validCreateRequest() model.CreateWorkoutRequest {
	return model.CreateWorkoutRequest{
		Title:           "Morning run",
		DurationMinutes: 30,
		CaloriesBurned:  250,
		Entries: []model.WorkoutEntryRequest{
			{ExerciseName: "Running", Sets: 1, DurationSeconds: intPtr(1800), OrderIndex: 1},
		},
	}
}

func TestCreateWorkoutValidation(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	cases := []struct {
		name   string
		mutate func(*model.CreateWorkoutRequest)
		msg    string
	}{
		{"missing title", func(r *model.CreateWorkoutRequest) { r.Title = "" }, "title is required"},
		{"long title", func(r *model.CreateWorkoutRequest) { r.Title = strings.Repeat("x", 256) }, "title cannot be greater than 255 characters"},
		{"zero duration", func(r *model.CreateWorkoutRequest) { r.DurationMinutes = 0 }, "duration_minutes must be greater than 0"},
		{"negative calories", func(r *model.CreateWorkoutRequest) { r.CaloriesBurned = -1 }, "calories_burned cannot be negative"},
		{"entry without exercise", func(r *model.CreateWorkoutRequest) { r.Entries[0].ExerciseName = "" }, "exercise_name is required"},
		{"entry without sets", func(r *model.CreateWorkoutRequest) { r.Entries[0].Sets = 0 }, "sets must be at least 1"},
		{"entry with neither reps nor duration", func(r *model.CreateWorkoutRequest) { r.Entries[0].DurationSeconds = nil }, "entry must have either reps or duration_seconds, but not both"},
		{"entry with both reps and duration", func(r *model.CreateWorkoutRequest) { r.Entries[0].Reps = intPtr(10) }, "entry must have either reps or duration_seconds, but not both"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), 42, req)
			require.EqualError(t, err, tc.msg)
		})
	}
}

func TestCreateAndGetWorkout(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, int64(42), created.UserID)
	require.Len(t, created.Entries, 1)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), 999)
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestUpdateWorkoutPartial(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, 42, model.UpdateWorkoutRequest{
		Title: strPtr("Evening run"),
	})
	require.NoError(t, err)
	require.Equal(t, "Evening run", updated.Title)
	// Untouched fields keep their values.
	require.Equal(t, 30, updated.DurationMinutes)
	require.Len(t, updated.Entries, 1)
}

func TestUpdateWorkoutReplacesEntries(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)

	entries := []model.WorkoutEntryRequest{
		{ExerciseName: "Squats", Sets: 3, Reps: intPtr(12), OrderIndex: 1},
		{ExerciseName: "Plank", Sets: 3, DurationSeconds: intPtr(60), OrderIndex: 2},
	}
	updated, err := svc.Update(context.Background(), created.ID, 42, model.UpdateWorkoutRequest{Entries: &entries})
	require.NoError(t, err)
	require.Len(t, updated.Entries, 2)
	require.Equal(t, "Squats", updated.Entries[0].ExerciseName)
}

func TestUpdateWorkoutOwnership(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, 7, model.UpdateWorkoutRequest{Title: strPtr("hijack")})
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(context.Background(), 999, 42, model.UpdateWorkoutRequest{})
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestUpdateWorkoutValidation(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutStore())

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, 42, model.UpdateWorkoutRequest{Title: strPtr("")})
	require.EqualError(t, err, "title cannot be empty")

	_, err = svc.Update(context.Background(), created.ID, 42, model.UpdateWorkoutRequest{DurationMinutes: intPtr(0)})
	require.EqualError(t, err, "duration_minutes must be greater than 0")

	_, err = svc.Update(context.Background(), created.ID, 42, model.UpdateWorkoutRequest{CaloriesBurned: intPtr(-5)})
	require.EqualError(t, err, "calories_burned cannot be negative")
}

func TestDeleteWorkout(t *testing.T) {
	store := newFakeWorkoutStore()
	svc := NewWorkoutService(store)

	created, err := svc.Create(context.Background(), 42, validCreateRequest())
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), created.ID, 7), ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), created.ID, 42))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID, 42), ErrWorkoutNotFound)
}
