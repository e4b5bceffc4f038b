package postapp

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"scriptum/internal/config"
	"scriptum/internal/core/access"
	"scriptum/internal/core/apperr"
	postEntity "scriptum/internal/core/post"
	categoryPort "scriptum/internal/ports/category"
	commentPort "scriptum/internal/ports/comment"
	postPort "scriptum/internal/ports/post"
	userPort "scriptum/internal/ports/user"
)

// PostService implements the listing queries and post mutations. Listings
// apply the public visibility filter uniformly; the two privileged cases
// (own-profile listing, author/staff detail view) are the only exceptions.
type PostService struct {
	PostRepository     postPort.PostRepository
	CategoryRepository categoryPort.CategoryRepository
	LocationRepository categoryPort.LocationRepository
	UserRepository     userPort.UserRepository
	CommentRepository  commentPort.CommentRepository
	CountCache         commentPort.CountCache
	PageSize           int
}

func NewPostService(
	postRepo postPort.PostRepository,
	categoryRepo categoryPort.CategoryRepository,
	locationRepo categoryPort.LocationRepository,
	userRepo userPort.UserRepository,
	commentRepo commentPort.CommentRepository,
	countCache commentPort.CountCache,
	pageSize int,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		CategoryRepository: categoryRepo,
		LocationRepository: locationRepo,
		UserRepository:     userRepo,
		CommentRepository:  commentRepo,
		CountCache:         countCache,
		PageSize:           pageSize,
	}
}

func toDTO(p *postEntity.Post, commentCount int64) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:           p.ID.String(),
		Title:        p.Title,
		Text:         p.Text,
		ImageURL:     p.ImageURL,
		PubDate:      p.PubDate,
		IsPublished:  p.IsPublished,
		CommentCount: commentCount,
		CreatedAt:    p.CreatedAt,
	}
	if p.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{
			ID:        p.Author.ID.String(),
			Username:  p.Author.Username,
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		}
	}
	if p.Category != nil {
		dto.Category = &categoryPort.CategoryDTO{
			ID:    p.Category.ID.String(),
			Title: p.Category.Title,
			Slug:  p.Category.Slug,
		}
	}
	if p.Location != nil {
		dto.Location = &categoryPort.LocationDTO{
			ID:   p.Location.ID.String(),
			Name: p.Location.Name,
		}
	}
	return dto
}

// commentCounts resolves comment counts for a page of posts: Redis first,
// database for the cold keys, backfilling the cache on the way out.
func (s *PostService) commentCounts(ctx context.Context, posts []*postEntity.Post) map[string]int64 {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID.String()
	}

	cached, err := s.CountCache.Get(ctx, ids)
	if err != nil {
		config.Logger.Warn("comment count cache unavailable, falling back to database", zap.Error(err))
		cached = map[string]int64{}
	}

	var cold []string
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			cold = append(cold, id)
		}
	}
	if len(cold) > 0 {
		fromDB, err := s.CommentRepository.CountByPostIDs(ctx, cold)
		if err != nil {
			config.Logger.Error("could not count comments", zap.Error(err))
		} else {
			for id, n := range fromDB {
				cached[id] = n
				if err := s.CountCache.Set(ctx, id, n); err != nil {
					config.Logger.Warn("could not backfill comment count", zap.String("postID", id), zap.Error(err))
				}
			}
		}
	}
	return cached
}

func (s *PostService) buildPage(ctx context.Context, posts []*postEntity.Post, pageNum int, total int64) *postPort.PageDTO {
	counts := s.commentCounts(ctx, posts)

	dtos := make([]*postPort.PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = toDTO(p, counts[p.ID.String()])
	}

	totalPages := int((total + int64(s.PageSize) - 1) / int64(s.PageSize))
	return &postPort.PageDTO{
		Posts:      dtos,
		Page:       pageNum,
		PageSize:   s.PageSize,
		TotalPosts: total,
		TotalPages: totalPages,
	}
}

func (s *PostService) offset(pageNum int) int {
	if pageNum < 1 {
		pageNum = 1
	}
	return (pageNum - 1) * s.PageSize
}

// ListPublished returns one page of publicly visible posts, newest first.
func (s *PostService) ListPublished(ctx context.Context, pageNum int) (*postPort.PageDTO, error) {
	posts, total, err := s.PostRepository.FindPublished(ctx, time.Now(), s.offset(pageNum), s.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return s.buildPage(ctx, posts, pageNum, total), nil
}

// ListByCategory returns the category and one page of its visible posts.
// Unknown or unpublished slugs are NotFound.
func (s *PostService) ListByCategory(ctx context.Context, slug string, pageNum int) (*categoryPort.CategoryDTO, *postPort.PageDTO, error) {
	cat, err := s.CategoryRepository.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, nil, err
	}

	posts, total, err := s.PostRepository.FindPublishedByCategory(ctx, cat.ID.String(), time.Now(), s.offset(pageNum), s.PageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list category posts: %w", err)
	}

	catDTO := &categoryPort.CategoryDTO{
		ID:          cat.ID.String(),
		Title:       cat.Title,
		Slug:        cat.Slug,
		Description: cat.Description,
	}
	return catDTO, s.buildPage(ctx, posts, pageNum, total), nil
}

// ListByAuthor returns the profile user and one page of their posts. The
// owner sees everything, including unpublished and future-dated posts;
// everyone else sees the public filter.
func (s *PostService) ListByAuthor(ctx context.Context, username string, viewer access.Actor, pageNum int) (*userPort.UserDTO, *postPort.PageDTO, error) {
	profile, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	publicOnly := !viewer.Authenticated || viewer.ID != profile.ID
	posts, total, err := s.PostRepository.FindByAuthor(ctx, profile.ID.String(), publicOnly, time.Now(), s.offset(pageNum), s.PageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list profile posts: %w", err)
	}

	profileDTO := &userPort.UserDTO{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
	}
	return profileDTO, s.buildPage(ctx, posts, pageNum, total), nil
}

// GetDetail returns one post with its comments. A post hidden from this
// viewer is indistinguishable from an absent one.
func (s *PostService) GetDetail(ctx context.Context, id string, viewer access.Actor) (*postPort.PostDTO, []*commentPort.CommentDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !access.CanViewPost(viewer, p, time.Now()) {
		return nil, nil, apperr.ErrNotFound
	}

	comments, err := s.CommentRepository.FindByPost(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}

	commentDTOs := make([]*commentPort.CommentDTO, len(comments))
	for i, c := range comments {
		commentDTOs[i] = &commentPort.CommentDTO{
			ID:     c.ID.String(),
			Text:   c.Text,
			PostID: c.PostID.String(),
			Author: &userPort.UserDTO{
				ID:       c.Author.ID.String(),
				Username: c.Author.Username,
			},
			CreatedAt: c.CreatedAt,
		}
	}

	return toDTO(p, int64(len(comments))), commentDTOs, nil
}

// validateInput checks the submitted fields and resolves the optional
// category/location references. Nothing is persisted on failure.
func (s *PostService) validateInput(ctx context.Context, in postPort.PostInput) (*uuid.UUID, *uuid.UUID, error) {
	if in.Title == "" || in.Text == "" {
		return nil, nil, fmt.Errorf("%w: title and text are required", apperr.ErrValidation)
	}

	var categoryID, locationID *uuid.UUID
	if in.CategoryID != "" {
		cat, err := s.CategoryRepository.FindByID(ctx, in.CategoryID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: unknown category", apperr.ErrValidation)
		}
		categoryID = &cat.ID
	}
	if in.LocationID != "" {
		loc, err := s.LocationRepository.FindByID(ctx, in.LocationID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: unknown location", apperr.ErrValidation)
		}
		locationID = &loc.ID
	}
	return categoryID, locationID, nil
}

// CreatePost persists a new post authored by the actor.
func (s *PostService) CreatePost(ctx context.Context, actor access.Actor, in postPort.PostInput) (*postPort.PostDTO, error) {
	if !actor.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	categoryID, locationID, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.PubDate.IsZero() {
		in.PubDate = time.Now()
	}

	p := &postEntity.Post{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       in.Title,
		Text:        in.Text,
		ImageURL:    in.ImageURL,
		PubDate:     in.PubDate,
		IsPublished: in.IsPublished,
		AuthorID:    actor.ID,
		CategoryID:  categoryID,
		LocationID:  locationID,
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return toDTO(created, 0), nil
}

// UpdatePost edits an existing post. Only the author may edit; other
// actors get Forbidden, or NotFound when the post is hidden from them.
func (s *PostService) UpdatePost(ctx context.Context, actor access.Actor, id string, in postPort.PostInput) (*postPort.PostDTO, error) {
	if !actor.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewPost(actor, p, time.Now()) {
		return nil, apperr.ErrNotFound
	}
	if !access.CanModify(actor, p.AuthorID) {
		return nil, apperr.ErrForbidden
	}

	categoryID, locationID, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Text = in.Text
	p.ImageURL = in.ImageURL
	if !in.PubDate.IsZero() {
		p.PubDate = in.PubDate
	}
	p.IsPublished = in.IsPublished
	p.CategoryID = categoryID
	p.LocationID = locationID

	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return toDTO(p, 0), nil
}

// DeletePost removes an existing post. Author-only; hidden posts look
// like NotFound to everyone else.
func (s *PostService) DeletePost(ctx context.Context, actor access.Actor, id string) error {
	if !actor.Authenticated {
		return apperr.ErrUnauthenticated
	}

	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanViewPost(actor, p, time.Now()) {
		return apperr.ErrNotFound
	}
	if !access.CanModify(actor, p.AuthorID) {
		return apperr.ErrForbidden
	}

	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := s.CountCache.Invalidate(ctx, id); err != nil {
		config.Logger.Warn("could not invalidate comment count", zap.String("postID", id), zap.Error(err))
	}
	return nil
}

// FormOptions returns the published categories and locations offered in
// the create/edit form.
func (s *PostService) FormOptions(ctx context.Context) ([]*categoryPort.CategoryDTO, []*categoryPort.LocationDTO, error) {
	cats, err := s.CategoryRepository.FindPublished(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	locs, err := s.LocationRepository.FindPublished(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list locations: %w", err)
	}

	catDTOs := make([]*categoryPort.CategoryDTO, len(cats))
	for i, c := range cats {
		catDTOs[i] = &categoryPort.CategoryDTO{ID: c.ID.String(), Title: c.Title, Slug: c.Slug}
	}
	locDTOs := make([]*categoryPort.LocationDTO, len(locs))
	for i, l := range locs {
		locDTOs[i] = &categoryPort.LocationDTO{ID: l.ID.String(), Name: l.Name}
	}
	return catDTOs, locDTOs, nil
}
