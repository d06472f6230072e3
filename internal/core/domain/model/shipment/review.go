package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

const (
	// RatingMin is the lowest star rating a review may carry.
	RatingMin = 1
	// RatingMax is the highest star rating a review may carry.
	RatingMax = 5
)

// ErrReviewIsNotConstructed is returned when a Review instance was not created
// through NewReview or RestoreReview.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is the client's one-time rating of a delivered shipment.
// At most one review exists per shipment; the storage layer backs this with a
// uniqueness constraint on the shipment reference.
type Review struct {
	// id is the unique identifier for the review
	id kernel.UUID

	// rating is the star rating in [RatingMin, RatingMax]
	rating int

	// comment is optional free text
	comment string

	// createdAt is the timezone-aware creation timestamp
	createdAt time.Time

	// isConstructed ensures the review was created via a constructor
	isConstructed bool
}

// NewReview creates a Review with validation.
// Rating must lie within [RatingMin, RatingMax]; the comment is optional.
func NewReview(id kernel.UUID, rating int, comment string, createdAt time.Time) (*Review, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if rating < RatingMin || rating > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("review createdAt")
	}

	return &Review{
		id:            id,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreReview reconstructs a Review from persistent storage.
func RestoreReview(id kernel.UUID, rating int, comment string, createdAt time.Time) (*Review, error) {
	return NewReview(id, rating, comment, createdAt)
}

// Validate ensures the Review instance was properly constructed.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

// ID returns the review's unique identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// Rating returns the star rating.
func (r *Review) Rating() int {
	return r.rating
}

// Comment returns the optional free-text comment.
func (r *Review) Comment() string {
	return r.comment
}

// CreatedAt returns the review's creation timestamp.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}
