// Package imagegen turns prompt requests into image URLs stored on tiles.
package imagegen

import (
	"context"
	"errors"

	"stickerbingo/internal/prompt"
)

// ErrNoImage is returned when a backend answered without a usable image.
var ErrNoImage = errors.New("no image generated")

// Service produces the URL of an image for a prompt.
type Service interface {
	Generate(ctx context.Context, req prompt.Request) (string, error)
}

// Func adapts a plain function to Service.
type Func func(ctx context.Context, req prompt.Request) (string, error)

func (f Func) Generate(ctx context.Context, req prompt.Request) (string, error) {
	return f(ctx, req)
}
