package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/validation"
)

// MessageIndex mirrors the feed into a search engine. Failures are logged only.
type MessageIndex interface {
	Index(ctx context.Context, row entity.FeedRow) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.FeedRow, error)
}

type MessageService struct {
	Repo   repo.MessageRepository
	Index  MessageIndex
	Logger *logrus.Logger
}

func NewMessageService(messages repo.MessageRepository, index MessageIndex, logger *logrus.Logger) *MessageService {
	return &MessageService{Repo: messages, Index: index, Logger: logger}
}

// Feed returns all messages, newest first, with author labels for viewer.
func (s *MessageService) Feed(ctx context.Context, viewer *entity.User) ([]entity.FeedItem, error) {
	rows, err := s.Repo.Feed(ctx)
	if err != nil {
		return nil, storeError("load feed", err)
	}
	out := make([]entity.FeedItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ForViewer(viewer))
	}
	return out, nil
}

type PostMessageInput struct {
	Title   string `json:"title" validate:"nonblank,max=200" msg:"Title is required (max 200 characters)"`
	Content string `json:"content" validate:"nonblank,max=5000" msg:"Content is required (max 5000 characters)"`
}

// Post creates a message owned by user.
func (s *MessageService) Post(ctx context.Context, user *entity.User, in PostMessageInput) (*entity.Message, error) {
	if err := Authorize(user, ActionPostMessage); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if fields := validation.Struct(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	m := &entity.Message{UserID: user.ID, Title: in.Title, Content: in.Content}
	if err := s.Repo.Create(ctx, m); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("create message failed")
		}
		return nil, storeError("create message", err)
	}

	s.index(ctx, entity.FeedRow{
		Message:                    *m,
		AuthorSpecialMemberName:    user.SpecialMemberName,
		AuthorNonMemberDisplayName: user.NonMemberDisplayName,
	})
	return m, nil
}

// Delete removes a message. Only admins may delete.
func (s *MessageService) Delete(ctx context.Context, user *entity.User, id string) error {
	if err := Authorize(user, ActionDeleteMessage); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrMessageNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMessageNotFound
		}
		return storeError("delete message", err)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("message_id", id).Warn("search delete failed")
		}
	}
	return nil
}

// Search queries the search index; without one it returns an empty result.
func (s *MessageService) Search(ctx context.Context, viewer *entity.User, q string, size int) ([]entity.FeedItem, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.FeedItem{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	rows, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, storeError("search messages", err)
	}
	out := make([]entity.FeedItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ForViewer(viewer))
	}
	return out, nil
}

func (s *MessageService) index(ctx context.Context, row entity.FeedRow) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, row); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("message_id", row.ID).Warn("search index failed")
	}
}
