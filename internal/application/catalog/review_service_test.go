package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*catalog.Review, error) {
	args := m.Called(ctx, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func reviewServiceFixture() (*ReviewService, *MockReviewRepository, *MockProductRepository, *MockUserRepository, *MockStorage) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	storage := new(MockStorage)
	svc := NewReviewService(reviewRepo, productRepo, userRepo, storage, zap.NewNop())
	return svc, reviewRepo, productRepo, userRepo, storage
}

func newReviewFixture(t *testing.T, productID, userID uuid.UUID, rating int) *catalog.Review {
	t.Helper()
	review, err := catalog.NewReview(productID, userID, rating, "Thriving on my balcony")
	require.NoError(t, err)
	return review
}

func TestReviewService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a review for an existing product", func(t *testing.T) {
		svc, reviewRepo, productRepo, _, _ := reviewServiceFixture()
		product := newProductFixture(t, "Peace Lily", 300, 5)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		reviewRepo.On("FindByProductAndUser", mock.Anything, product.ID, userID).Return(nil, shared.ErrNotFound)
		reviewRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *catalog.Review) bool {
			return r.ProductID == product.ID && r.UserID == userID && r.Rating == 5
		})).Return(nil)

		resp, err := svc.Create(context.Background(), userID, product.ID, CreateReviewRequest{Rating: 5, Comment: "Lovely"})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects a second review from the same user", func(t *testing.T) {
		svc, reviewRepo, productRepo, _, _ := reviewServiceFixture()
		product := newProductFixture(t, "Peace Lily", 300, 5)
		existing := newReviewFixture(t, product.ID, userID, 4)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		reviewRepo.On("FindByProductAndUser", mock.Anything, product.ID, userID).Return(existing, nil)

		_, err := svc.Create(context.Background(), userID, product.ID, CreateReviewRequest{Rating: 2})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects reviews for unknown products", func(t *testing.T) {
		svc, reviewRepo, productRepo, _, _ := reviewServiceFixture()

		productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), userID, uuid.New(), CreateReviewRequest{Rating: 3})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		reviewRepo.AssertNotCalled(t, "FindByProductAndUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReviewService_ListByProduct(t *testing.T) {
	t.Run("resolves reviewer names and presigns images", func(t *testing.T) {
		svc, reviewRepo, _, userRepo, storage := reviewServiceFixture()
		productID := uuid.New()

		author, err := identity.NewUser("Ravi Kumar", "ravi@example.com", "sprout42")
		require.NoError(t, err)

		review := newReviewFixture(t, productID, author.ID, 4)
		review.SetImage("reviews/r1/photo.jpg")

		reviewRepo.On("FindByProduct", mock.Anything, productID).Return([]catalog.Review{*review}, nil)
		userRepo.On("FindByID", mock.Anything, author.ID).Return(author, nil)
		storage.On("GenerateDownloadURL", mock.Anything, "reviews/r1/photo.jpg", reviewImageURLTTL).
			Return("https://cdn.example.com/reviews/r1/photo.jpg", time.Now().Add(reviewImageURLTTL), nil)

		responses, err := svc.ListByProduct(context.Background(), productID)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "Ravi Kumar", responses[0].ReviewerName)
		assert.Equal(t, "https://cdn.example.com/reviews/r1/photo.jpg", responses[0].ImageURL)
	})

	t.Run("tolerates a deleted reviewer account", func(t *testing.T) {
		svc, reviewRepo, _, userRepo, _ := reviewServiceFixture()
		productID := uuid.New()
		review := newReviewFixture(t, productID, uuid.New(), 3)

		reviewRepo.On("FindByProduct", mock.Anything, productID).Return([]catalog.Review{*review}, nil)
		userRepo.On("FindByID", mock.Anything, review.UserID).Return(nil, shared.ErrNotFound)

		responses, err := svc.ListByProduct(context.Background(), productID)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Empty(t, responses[0].ReviewerName)
	})
}

func TestReviewService_Update(t *testing.T) {
	t.Run("author edits their review", func(t *testing.T) {
		svc, reviewRepo, _, _, _ := reviewServiceFixture()
		authorID := uuid.New()
		review := newReviewFixture(t, uuid.New(), authorID, 3)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
		reviewRepo.On("Save", mock.Anything, review).Return(nil)

		resp, err := svc.Update(context.Background(), authorID, review.ID, UpdateReviewRequest{Rating: 5, Comment: "Grew on me"})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
		assert.Equal(t, "Grew on me", resp.Comment)
	})

	t.Run("another user cannot edit it", func(t *testing.T) {
		svc, reviewRepo, _, _, _ := reviewServiceFixture()
		review := newReviewFixture(t, uuid.New(), uuid.New(), 3)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

		_, err := svc.Update(context.Background(), uuid.New(), review.ID, UpdateReviewRequest{Rating: 1})
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Delete(t *testing.T) {
	t.Run("admin deletes any review and its image", func(t *testing.T) {
		svc, reviewRepo, _, _, storage := reviewServiceFixture()
		review := newReviewFixture(t, uuid.New(), uuid.New(), 2)
		review.SetImage("reviews/r2/photo.jpg")

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
		reviewRepo.On("Delete", mock.Anything, review.ID).Return(nil)
		storage.On("DeleteObject", mock.Anything, "reviews/r2/photo.jpg").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), uuid.New(), true, review.ID))
		storage.AssertExpectations(t)
	})

	t.Run("stranger cannot delete it", func(t *testing.T) {
		svc, reviewRepo, _, _, _ := reviewServiceFixture()
		review := newReviewFixture(t, uuid.New(), uuid.New(), 2)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

		err := svc.Delete(context.Background(), uuid.New(), false, review.ID)
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestReviewService_AttachImage(t *testing.T) {
	t.Run("author attaches a photo", func(t *testing.T) {
		svc, reviewRepo, _, _, storage := reviewServiceFixture()
		authorID := uuid.New()
		review := newReviewFixture(t, uuid.New(), authorID, 4)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
		storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "reviews/"+review.ID.String()+"/")
		}), "image/jpeg", mock.Anything).Return(nil)
		reviewRepo.On("Save", mock.Anything, review).Return(nil)
		storage.On("GenerateDownloadURL", mock.Anything, mock.Anything, reviewImageURLTTL).
			Return("https://cdn.example.com/reviews/photo.jpg", time.Now(), nil)

		resp, err := svc.AttachImage(context.Background(), authorID, review.ID, "photo.jpg", "image/jpeg", strings.NewReader("img"))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ImageURL)
	})

	t.Run("non-author is rejected before upload", func(t *testing.T) {
		svc, reviewRepo, _, _, storage := reviewServiceFixture()
		review := newReviewFixture(t, uuid.New(), uuid.New(), 4)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

		_, err := svc.AttachImage(context.Background(), uuid.New(), review.ID, "photo.jpg", "image/jpeg", strings.NewReader("img"))
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
