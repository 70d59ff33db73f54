package view

import (
	"context"
	"errors"
)

var ErrNotConfirmed = errors.New("delete not confirmed")

// Command separates collecting review input from performing the
// mutation. The controller executes the finished command.
type Command interface {
	Run(ctx context.Context, c *Controller) error
}

func (c *Controller) Execute(ctx context.Context, cmd Command) error {
	return cmd.Run(ctx, c)
}

type SubmitReviewCommand struct {
	ProductID int64
	Rating    int
	Comment   string
}

func (cmd SubmitReviewCommand) Run(ctx context.Context, c *Controller) error {
	return c.reviews.Submit(ctx, cmd.ProductID, cmd.Rating, cmd.Comment)
}

type EditReviewCommand struct {
	ReviewID int64
	Rating   int
	Comment  string
}

func (cmd EditReviewCommand) Run(ctx context.Context, c *Controller) error {
	return c.reviews.Edit(ctx, cmd.ReviewID, cmd.Rating, cmd.Comment)
}

// DeleteReviewCommand carries the user's explicit confirmation; an
// unconfirmed delete never reaches the gateway.
type DeleteReviewCommand struct {
	ReviewID  int64
	Confirmed bool
}

func (cmd DeleteReviewCommand) Run(ctx context.Context, c *Controller) error {
	if !cmd.Confirmed {
		return ErrNotConfirmed
	}
	return c.reviews.Delete(ctx, cmd.ReviewID)
}
