package commands

import (
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrSubmitReviewCommandIsNotConstructed = errors.New(
		"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
	)
	ErrTokenIsRequired = errors.New("token is required")
)

// SubmitReviewCommand represents a client review submission authorized by a
// single-use token.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	token   string
	rating  int
	comment string

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to submit a shipment review.
// Validates that the token is non-empty and the rating lies within
// [shipment.RatingMin, shipment.RatingMax]. The comment is optional.
func NewSubmitReviewCommand(token string, rating int, comment string) (SubmitReviewCommand, error) {
	cmd := SubmitReviewCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setRating(rating),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitReviewCommandIsNotConstructed if validation fails.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// Token returns the single-use review token.
func (c SubmitReviewCommand) Token() string {
	return c.token
}

// Rating returns the review rating.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the free-text review comment, possibly empty.
func (c SubmitReviewCommand) Comment() string {
	return c.comment
}

func (c *SubmitReviewCommand) setToken(token string) error {
	if token == "" {
		return ErrTokenIsRequired
	}

	c.token = token
	return nil
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < shipment.RatingMin || rating > shipment.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, shipment.RatingMin, shipment.RatingMax)
	}

	c.rating = rating
	return nil
}
