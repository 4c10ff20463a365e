package users

import (
	"context"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
