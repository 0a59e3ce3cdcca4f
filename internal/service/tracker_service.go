package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// TrackerService owns the user and exercise-log business rules.
type TrackerService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AddExercise(ctx context.Context, userID primitive.ObjectID, description string, duration int, date time.Time) (*domain.User, *domain.Exercise, error)
	GetLogs(ctx context.Context, userID primitive.ObjectID, from, to *time.Time, limit *int) (*domain.User, []domain.Exercise, error)
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	log          *zap.SugaredLogger
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, log *zap.SugaredLogger) TrackerService {
	return &trackerService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		log:          log,
	}
}

// CreateUser persists a new user with an empty exercise list.
// Usernames are free-form; no uniqueness or format rules apply.
func (s *trackerService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{
		Username:  username,
		Exercises: []primitive.ObjectID{},
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	return user, nil
}

// ListUsers returns all users in insertion order.
func (s *trackerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AddExercise persists a new exercise and appends its reference to the
// user's exercise list. The two writes are not transactional: if the
// append fails because the user does not exist, the exercise document is
// left behind as orphaned garbage. An orphan is never reachable from any
// user's log, so it is harmless beyond the storage it occupies.
func (s *trackerService) AddExercise(ctx context.Context, userID primitive.ObjectID, description string, duration int, date time.Time) (*domain.User, *domain.Exercise, error) {
	exercise := &domain.Exercise{
		Description: description,
		Duration:    duration,
		Date:        date,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, nil, err
	}
	exercise.ID = exerciseID

	user, err := s.userRepo.AppendExerciseID(ctx, userID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warnw("exercise orphaned, owning user not found",
				"userId", userID.Hex(), "exerciseId", exerciseID.Hex())
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	return user, exercise, nil
}

// GetLogs loads a user and resolves their referenced exercises, filtered
// by the inclusive from/to bounds and capped by limit. A nil limit means
// no cap; a zero limit yields an empty log.
//
// All referenced exercises are fetched in a single batch query and
// reassembled into the user's stored order in memory. A reference that
// does not resolve is logged and skipped; it never aborts the request.
func (s *trackerService) GetLogs(ctx context.Context, userID primitive.ObjectID, from, to *time.Time, limit *int) (*domain.User, []domain.Exercise, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	// Effective limit: caller-supplied, else everything the user has.
	effectiveLimit := len(user.Exercises)
	if limit != nil {
		effectiveLimit = *limit
	}

	fetched, err := s.exerciseRepo.GetByIDs(ctx, user.Exercises)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[primitive.ObjectID]domain.Exercise, len(fetched))
	for _, ex := range fetched {
		byID[ex.ID] = ex
	}

	entries := make([]domain.Exercise, 0, len(user.Exercises))
	for _, id := range user.Exercises {
		// The cap counts included entries, not scanned ones.
		if len(entries) >= effectiveLimit {
			break
		}

		ex, ok := byID[id]
		if !ok {
			s.log.Warnw("exercise reference did not resolve, skipping",
				"userId", user.ID.Hex(), "exerciseId", id.Hex())
			continue
		}

		if from != nil && ex.Date.Before(*from) {
			continue
		}
		if to != nil && ex.Date.After(*to) {
			continue
		}

		entries = append(entries, ex)
	}

	return user, entries, nil
}
