package repository

import (
	"context"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/users"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) users.Repository {
	return &userRepo{
		db: db,
	}
}

func (u *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := u.db.QueryRowxContext(
		ctx,
		u.db.Rebind(getUserQuery),
		userID,
	).StructScan(user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
