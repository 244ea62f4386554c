package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

const reviewImageURLTTL = 15 * time.Minute

// ReviewService handles product review operations
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Create adds a review for a product. Each user may review a product once.
func (s *ReviewService) Create(ctx context.Context, userID, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByProductAndUser(ctx, productID, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	review, err := catalog.NewReview(productID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", productID.String()))

	return s.toResponse(ctx, review), nil
}

// ListByProduct returns a product's reviews, newest first, with reviewer names
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	names := s.reviewerNames(ctx, reviews)

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		resp := s.toResponse(ctx, &reviews[i])
		resp.ReviewerName = names[reviews[i].UserID]
		responses[i] = *resp
	}
	return responses, nil
}

// Update edits a review. Only its author may edit it.
func (s *ReviewService) Update(ctx context.Context, actorID uuid.UUID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, shared.ErrForbidden
	}

	if err := review.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, review), nil
}

// Delete removes a review. The author or an admin may delete it.
func (s *ReviewService) Delete(ctx context.Context, actorID uuid.UUID, actorIsAdmin bool, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !review.CanBeModifiedBy(actorID, actorIsAdmin) {
		return shared.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if review.ImageKey != "" {
		if err := s.storage.DeleteObject(ctx, review.ImageKey); err != nil {
			s.logger.Warn("Failed to delete review image",
				zap.String("key", review.ImageKey), zap.Error(err))
		}
	}

	return nil
}

// AttachImage stores a photo alongside the review. Only the author may attach one.
func (s *ReviewService) AttachImage(ctx context.Context, actorID uuid.UUID, reviewID uuid.UUID, filename, contentType string, body io.Reader) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, shared.ErrForbidden
	}

	key := fmt.Sprintf("reviews/%s/%d%s", review.ID, time.Now().UnixNano(), path.Ext(filename))
	if err := s.storage.Upload(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	old := review.ImageKey
	review.SetImage(key)
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	if old != "" && old != key {
		if err := s.storage.DeleteObject(ctx, old); err != nil {
			s.logger.Warn("Failed to delete replaced review image",
				zap.String("key", old), zap.Error(err))
		}
	}

	return s.toResponse(ctx, review), nil
}

func (s *ReviewService) toResponse(ctx context.Context, review *catalog.Review) *ReviewResponse {
	resp := ToReviewResponse(review)
	if review.ImageKey != "" {
		url, _, err := s.storage.GenerateDownloadURL(ctx, review.ImageKey, reviewImageURLTTL)
		if err != nil {
			s.logger.Warn("Failed to presign review image",
				zap.String("key", review.ImageKey), zap.Error(err))
		} else {
			resp.ImageURL = url
		}
	}
	return &resp
}

func (s *ReviewService) reviewerNames(ctx context.Context, reviews []catalog.Review) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(reviews))
	for i := range reviews {
		userID := reviews[i].UserID
		if _, ok := names[userID]; ok {
			continue
		}
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			names[userID] = ""
			continue
		}
		names[userID] = user.Name
	}
	return names
}
