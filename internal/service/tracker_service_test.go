package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- In-memory fakes ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
	order []primitive.ObjectID
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	r.order = append(r.order, user.ID)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) AppendExerciseID(_ context.Context, userID, exerciseID primitive.ObjectID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Exercises = append(user.Exercises, exerciseID)
	cp := *user
	return &cp, nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
	err       error
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{}}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	exercise.ID = primitive.NewObjectID()
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if r.err != nil {
		return nil, r.err
	}
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := []domain.Exercise{}
	for _, id := range ids {
		if ex, ok := r.exercises[id]; ok {
			result = append(result, ex)
		}
	}
	return result, nil
}

// --- Helpers ---

func newTestService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository) TrackerService {
	return NewTrackerService(userRepo, exerciseRepo, zap.NewNop().Sugar())
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func intPtr(n int) *int { return &n }

// --- Tests ---

func TestCreateUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestService(userRepo, newFakeExerciseRepo())

	first, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	second, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", first.Username)
	assert.False(t, first.ID.IsZero())
	assert.NotEqual(t, first.ID, second.ID, "ids must be unique across creations")
	assert.Empty(t, first.Exercises)
}

func TestListUsers(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestService(userRepo, newFakeExerciseRepo())

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.CreateUser(context.Background(), name)
		require.NoError(t, err)
	}

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)

	again, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, again, "listing is idempotent absent writes")
}

func TestAddExercise(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	date := day(t, "2021-01-01")
	user, exercise, err := svc.AddExercise(context.Background(), created.ID, "run", 30, date)
	require.NoError(t, err)

	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "run", exercise.Description)
	assert.Equal(t, 30, exercise.Duration)
	assert.True(t, exercise.Date.Equal(date))
	require.Len(t, user.Exercises, 1)
	assert.Equal(t, exercise.ID, user.Exercises[0])
}

func TestAddExercise_UnknownUserLeavesOrphan(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	_, _, err := svc.AddExercise(context.Background(), primitive.NewObjectID(), "run", 30, time.Now())
	assert.ErrorIs(t, err, ErrUserNotFound)

	// The exercise write happened before the failed append; the orphan
	// stays behind but is unreachable from any user.
	assert.Len(t, exerciseRepo.exercises, 1)
}

func TestAddExercise_ZeroValuesStoredAsIs(t *testing.T) {
	// Free-form text and unvalidated duration: empty description and a
	// zero duration are legitimate values, not rejections.
	userRepo := newFakeUserRepo()
	svc := newTestService(userRepo, newFakeExerciseRepo())

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	user, exercise, err := svc.AddExercise(context.Background(), created.ID, "", 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "", exercise.Description)
	assert.Equal(t, 0, exercise.Duration)
	assert.Len(t, user.Exercises, 1)
}

func TestGetLogs_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeExerciseRepo())

	_, _, err := svc.GetLogs(context.Background(), primitive.NewObjectID(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetLogs_StoredOrderNoFilters(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	for i, desc := range []string{"run", "swim", "lift"} {
		_, _, err := svc.AddExercise(context.Background(), created.ID, desc, 10+i, day(t, "2021-01-01").AddDate(0, 0, i))
		require.NoError(t, err)
	}

	user, entries, err := svc.GetLogs(context.Background(), created.ID, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	require.Len(t, entries, 3)
	assert.Equal(t, "run", entries[0].Description)
	assert.Equal(t, "swim", entries[1].Description)
	assert.Equal(t, "lift", entries[2].Description)
}

func TestGetLogs_DateBoundsInclusive(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	dates := []string{"2020-12-31", "2021-01-01", "2021-06-15", "2021-12-31", "2022-01-01"}
	for _, d := range dates {
		_, _, err := svc.AddExercise(context.Background(), created.ID, d, 10, day(t, d))
		require.NoError(t, err)
	}

	from := day(t, "2021-01-01")
	to := day(t, "2021-12-31")
	_, entries, err := svc.GetLogs(context.Background(), created.ID, &from, &to, nil)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "2021-01-01", entries[0].Description, "lower bound is inclusive")
	assert.Equal(t, "2021-06-15", entries[1].Description)
	assert.Equal(t, "2021-12-31", entries[2].Description, "upper bound is inclusive")
}

func TestGetLogs_LimitCountsIncludedEntries(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	// An out-of-range entry sits first; the limit must count included
	// entries, not scanned ones.
	entriesIn := []struct {
		desc string
		date string
	}{
		{"too-early", "2019-01-01"},
		{"first", "2021-01-01"},
		{"second", "2021-02-01"},
		{"third", "2021-03-01"},
		{"fourth", "2021-04-01"},
		{"fifth", "2021-05-01"},
	}
	for _, e := range entriesIn {
		_, _, err := svc.AddExercise(context.Background(), created.ID, e.desc, 10, day(t, e.date))
		require.NoError(t, err)
	}

	from := day(t, "2021-01-01")
	_, entries, err := svc.GetLogs(context.Background(), created.ID, &from, nil, intPtr(2))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)
}

func TestGetLogs_LimitZero(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	_, _, err = svc.AddExercise(context.Background(), created.ID, "run", 30, time.Now())
	require.NoError(t, err)

	_, entries, err := svc.GetLogs(context.Background(), created.ID, nil, nil, intPtr(0))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetLogs_SkipsUnresolvedReferences(t *testing.T) {
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := newTestService(userRepo, exerciseRepo)

	created, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	_, _, err = svc.AddExercise(context.Background(), created.ID, "run", 30, day(t, "2021-01-01"))
	require.NoError(t, err)

	// Inject a dangling reference between two valid ones.
	_, err = userRepo.AppendExerciseID(context.Background(), created.ID, primitive.NewObjectID())
	require.NoError(t, err)

	_, _, err = svc.AddExercise(context.Background(), created.ID, "swim", 20, day(t, "2021-01-02"))
	require.NoError(t, err)

	_, entries, err := svc.GetLogs(context.Background(), created.ID, nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, entries, 2, "dangling reference is skipped, not fatal")
	assert.Equal(t, "run", entries[0].Description)
	assert.Equal(t, "swim", entries[1].Description)
}
