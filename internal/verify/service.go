package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/savageaim/backend/internal/character"
	"github.com/savageaim/backend/internal/taskqueue"
)

// reasonAlreadyVerified is the failure reason reported when a task finds the
// flag already set, including when a concurrent task won the flip.
const reasonAlreadyVerified = "Already Verified!"

// CharacterStore is the slice of the character repository the service needs.
type CharacterStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*character.Character, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// Notifier delivers the outcome of a verification task to the owner.
type Notifier interface {
	VerifySuccess(ctx context.Context, char *character.Character) error
	VerifyFail(ctx context.Context, char *character.Character, reason string) error
}

// Service runs verification tasks. The request handler only checks
// eligibility and enqueues; the actual flip and its notifications happen
// here, off the request path.
type Service struct {
	chars    CharacterStore
	notifier Notifier
}

// NewService creates a new verification Service.
func NewService(chars CharacterStore, notifier Notifier) *Service {
	return &Service{
		chars:    chars,
		notifier: notifier,
	}
}

// Process handles one verification task. A character deleted between enqueue
// and processing is dropped silently. The unverified re-check and the flip
// are a single conditional update, so of two concurrent tasks for the same
// character exactly one produces a success notification; the other reports
// failure.
func (s *Service) Process(ctx context.Context, characterID uuid.UUID) error {
	char, err := s.chars.GetByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, character.ErrCharacterNotFound) {
			slog.Info("verification task dropped, character gone", "characterId", characterID)
			return nil
		}
		return fmt.Errorf("loading character: %w", err)
	}

	if char.Verified {
		return s.notifier.VerifyFail(ctx, char, reasonAlreadyVerified)
	}

	if err := s.chars.MarkVerified(ctx, char.ID); err != nil {
		if errors.Is(err, character.ErrAlreadyVerified) {
			return s.notifier.VerifyFail(ctx, char, reasonAlreadyVerified)
		}
		return fmt.Errorf("marking character verified: %w", err)
	}

	char.Verified = true
	slog.Info("character verified", "characterId", char.ID, "lodestoneId", char.LodestoneID)

	return s.notifier.VerifySuccess(ctx, char)
}

// Dispatcher enqueues verification tasks for the worker.
type Dispatcher struct {
	queue *taskqueue.Queue
}

// NewDispatcher creates a Dispatcher over the given queue.
func NewDispatcher(queue *taskqueue.Queue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch pushes a verification task for the character.
func (d *Dispatcher) Dispatch(ctx context.Context, characterID uuid.UUID) error {
	return d.queue.Push(ctx, taskqueue.NewVerifyTask(characterID))
}
