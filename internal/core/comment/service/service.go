package commentapp

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"scriptum/internal/config"
	"scriptum/internal/core/access"
	"scriptum/internal/core/apperr"
	commentEntity "scriptum/internal/core/comment"
	commentPort "scriptum/internal/ports/comment"
	postPort "scriptum/internal/ports/post"
	userPort "scriptum/internal/ports/user"
)

// CommentService handles comment creation and author-only edits/deletes.
type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	CountCache        commentPort.CountCache
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	countCache commentPort.CountCache,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		CountCache:        countCache,
	}
}

func toDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	dto := &commentPort.CommentDTO{
		ID:        c.ID.String(),
		Text:      c.Text,
		PostID:    c.PostID.String(),
		CreatedAt: c.CreatedAt,
	}
	if c.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{
			ID:       c.Author.ID.String(),
			Username: c.Author.Username,
		}
	}
	return dto
}

// CreateComment attaches a new comment by the actor to the given post. The
// post must exist and be viewable by the actor.
func (s *CommentService) CreateComment(ctx context.Context, actor access.Actor, postID, text string) (*commentPort.CommentDTO, error) {
	if !actor.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperr.ErrValidation)
	}

	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewPost(actor, p, time.Now()) {
		return nil, apperr.ErrNotFound
	}

	c := &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		PostID:   p.ID,
		AuthorID: actor.ID,
	}

	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if err := s.CountCache.Incr(ctx, postID); err != nil {
		config.Logger.Warn("could not bump comment count", zap.String("postID", postID), zap.Error(err))
	}
	return toDTO(created), nil
}

// getOwned resolves a comment under a post and checks ownership. A comment
// id that exists but belongs to another post is NotFound, not Forbidden.
func (s *CommentService) getOwned(ctx context.Context, actor access.Actor, postID, commentID string) (*commentEntity.Comment, error) {
	if !actor.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	c, err := s.CommentRepository.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID.String() != postID {
		return nil, apperr.ErrNotFound
	}
	if !access.CanModify(actor, c.AuthorID) {
		return nil, apperr.ErrForbidden
	}
	return c, nil
}

// GetComment returns a single comment for the edit form, owner-only.
func (s *CommentService) GetComment(ctx context.Context, actor access.Actor, postID, commentID string) (*commentPort.CommentDTO, error) {
	c, err := s.getOwned(ctx, actor, postID, commentID)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

// UpdateComment edits a comment's text, owner-only.
func (s *CommentService) UpdateComment(ctx context.Context, actor access.Actor, postID, commentID, text string) (*commentPort.CommentDTO, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperr.ErrValidation)
	}

	c, err := s.getOwned(ctx, actor, postID, commentID)
	if err != nil {
		return nil, err
	}

	c.Text = text
	if err := s.CommentRepository.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return toDTO(c), nil
}

// DeleteComment removes a comment, owner-only.
func (s *CommentService) DeleteComment(ctx context.Context, actor access.Actor, postID, commentID string) error {
	c, err := s.getOwned(ctx, actor, postID, commentID)
	if err != nil {
		return err
	}

	if err := s.CommentRepository.Delete(ctx, c.ID.String()); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if err := s.CountCache.Decr(ctx, postID); err != nil {
		config.Logger.Warn("could not decrement comment count", zap.String("postID", postID), zap.Error(err))
	}
	return nil
}
