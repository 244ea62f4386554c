package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// Review is a customer review of a product
// Each user may review a given product at most once, enforced by the
// composite unique index
type Review struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:2"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"type:text"`
	ImageKey  string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review
func NewReview(productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
	}, nil
}

// Update changes the rating and comment
func (r *Review) Update(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	if err := validateComment(comment); err != nil {
		return err
	}

	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetImage attaches an uploaded image key to the review
func (r *Review) SetImage(key string) {
	r.ImageKey = key
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// CanBeModifiedBy reports whether the actor may update or delete this review
func (r *Review) CanBeModifiedBy(userID uuid.UUID, isAdmin bool) bool {
	return isAdmin || r.UserID == userID
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) > 2000 {
		return shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}
	return nil
}
