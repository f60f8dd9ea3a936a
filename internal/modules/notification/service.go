package notification

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Service is the single egress point for user notifications. Notify is
// fire-and-forget: a failed notification is logged and swallowed, it never
// affects the state transition that triggered it.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
	ListUserNotifications(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new notification service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    TypeInfo,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification to user %s dropped: %v", userID, err)
	}
}

func (s *service) ListUserNotifications(ctx context.Context, userID string) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
