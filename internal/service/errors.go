package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error taxonomy. Services wrap these with context; handlers map them
// to HTTP statuses.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenReuse      = errors.New("refresh token reuse detected")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
)

// parseID validates an externally supplied identifier before it ever
// reaches an equality match; a malformed id fails fast instead of
// silently matching nothing.
func parseID(hexID, what string) (primitive.ObjectID, error) {
	if hexID == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: %s id is required", ErrInvalidArgument, what)
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s id is not valid", ErrInvalidArgument, what)
	}
	return id, nil
}
