package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// UserRepository users table access
type UserRepository struct {
	db     *Database
	logger utils.Logger
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: utils.GetLogger(),
	}
}

const userColumns = `u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.phone,
	u.role_id, r.name, u.is_active, u.email_verified, u.last_login, u.created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var phone sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&phone,
		&user.RoleID,
		&user.RoleName,
		&user.IsActive,
		&user.EmailVerified,
		&lastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		user.Phone = &phone.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}

// ExistsByUsernameOrEmail reports whether either identifier is taken
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, username, email).Scan(&count)
	if err != nil {
		r.logger.Error("check user existence failed", "username", username, "email", utils.SanitizeEmail(email), "error", err.Error())
		return false, utils.ErrDatabaseQuery
	}
	return count > 0, nil
}

// Create inserts a user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash, first_name, last_name, phone, role_id, is_active, email_verified, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.RoleID,
		user.IsActive,
		user.EmailVerified,
		user.CreatedAt,
	)
	if err != nil {
		// a concurrent registration can slip past ExistsByUsernameOrEmail
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			r.logger.Warn("create user hit unique key", "username", user.Username, "email", utils.SanitizeEmail(user.Email))
			return utils.ErrUserAlreadyExists
		}
		r.logger.Error("create user failed", "username", user.Username, "error", err.Error())
		return utils.ErrDatabaseInsert
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("read user id failed", "username", user.Username, "error", err.Error())
		return utils.ErrDatabaseInsert
	}

	user.ID = uint(id)
	r.logger.Info("user created", "userID", user.ID, "username", user.Username)
	return nil
}

// FindActiveByLogin finds an active user whose username or email equals login
func (r *UserRepository) FindActiveByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN roles r ON u.role_id = r.id
			  WHERE (u.username = ? OR u.email = ?) AND u.is_active = TRUE`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, login, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		r.logger.Error("find user by login failed", "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return user, nil
}

// GetByID loads a user with its role name
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN roles r ON u.role_id = r.id
			  WHERE u.id = ?`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		r.logger.Error("get user failed", "userID", id, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return user, nil
}

// UpdateLastLogin stamps last_login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.db.DB.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at, userID)
	if err != nil {
		r.logger.Error("update last login failed", "userID", userID, "error", err.Error())
		return utils.ErrDatabaseUpdate
	}
	return nil
}

// UpdatePassword replaces the stored hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		r.logger.Error("update password failed", "userID", userID, "error", err.Error())
		return utils.ErrDatabaseUpdate
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return utils.ErrUserNotFound
	}
	return nil
}

// IsActiveDonor reports whether id is an active user holding the donor role
func (r *UserRepository) IsActiveDonor(ctx context.Context, id uint) (bool, error) {
	query := `SELECT COUNT(*) FROM users u JOIN roles r ON u.role_id = r.id
			  WHERE u.id = ? AND r.name = 'donor' AND u.is_active = TRUE`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		r.logger.Error("donor check failed", "donorID", id, "error", err.Error())
		return false, utils.ErrDatabaseQuery
	}
	return count > 0, nil
}
