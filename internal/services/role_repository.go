package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// RoleRepository roles table access
type RoleRepository struct {
	db     *Database
	logger utils.Logger
}

// NewRoleRepository creates a RoleRepository
func NewRoleRepository(db *Database) *RoleRepository {
	return &RoleRepository{db: db, logger: utils.GetLogger()}
}

// List returns every role ordered by id
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.DB.QueryContext(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		r.logger.Error("list roles failed", "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	defer rows.Close()

	roles := make([]models.Role, 0, 3)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			r.logger.Error("scan role failed", "error", err.Error())
			return nil, utils.ErrDatabaseQuery
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("iterate roles failed", "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return roles, nil
}

// GetByID loads a role; ErrInvalidRole when absent
func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var role models.Role
	err := r.db.DB.QueryRowContext(ctx, `SELECT id, name, description FROM roles WHERE id = ?`, id).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidRole
		}
		r.logger.Error("get role failed", "roleID", id, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return &role, nil
}
