package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// DonationRepository donations table access
type DonationRepository struct {
	db     *Database
	logger utils.Logger
}

// NewDonationRepository creates a DonationRepository
func NewDonationRepository(db *Database) *DonationRepository {
	return &DonationRepository{db: db, logger: utils.GetLogger()}
}

// ListByDonor returns the donor's donations ordered by status priority then expiry
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error) {
	query := `SELECT d.id, d.donor_id, d.title, d.description, d.food_type, d.quantity, d.unit,
			  d.expiry_date, d.pickup_address, d.pickup_time, d.status, d.volunteer_id,
			  d.organization_id, d.image_url, d.created_at,
			  CONCAT(u.first_name, ' ', u.last_name) AS donor_name
			  FROM donations d
			  JOIN users u ON d.donor_id = u.id
			  WHERE d.donor_id = ?
			  ORDER BY CASE d.status
			  WHEN 'current' THEN 1
			  WHEN 'donated' THEN 2
			  WHEN 'expired' THEN 3
			  ELSE 4 END, d.expiry_date ASC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.DB.QueryContext(ctx, query, donorID)
	if err != nil {
		r.logger.Error("list donations failed", "donorID", donorID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	defer rows.Close()

	donations := make([]models.Donation, 0)
	for rows.Next() {
		var d models.Donation
		var description, imageURL sql.NullString
		var pickupTime sql.NullTime
		var volunteerID, organizationID sql.NullInt64

		if err := rows.Scan(
			&d.ID,
			&d.DonorID,
			&d.Title,
			&description,
			&d.FoodType,
			&d.Quantity,
			&d.Unit,
			&d.ExpiryDate,
			&d.PickupAddress,
			&pickupTime,
			&d.Status,
			&volunteerID,
			&organizationID,
			&imageURL,
			&d.CreatedAt,
			&d.DonorName,
		); err != nil {
			r.logger.Error("scan donation failed", "donorID", donorID, "error", err.Error())
			return nil, utils.ErrDatabaseQuery
		}

		if description.Valid {
			d.Description = &description.String
		}
		if imageURL.Valid {
			d.ImageURL = &imageURL.String
		}
		if pickupTime.Valid {
			t := pickupTime.Time
			d.PickupTime = &t
		}
		if volunteerID.Valid {
			id := uint(volunteerID.Int64)
			d.VolunteerID = &id
		}
		if organizationID.Valid {
			id := uint(organizationID.Int64)
			d.OrganizationID = &id
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("iterate donations failed", "donorID", donorID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return donations, nil
}

// Create inserts a donation and sets its ID
func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) error {
	query := `INSERT INTO donations (donor_id, title, description, food_type, quantity, unit, expiry_date,
			  pickup_address, pickup_time, status, image_url, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, query,
		d.DonorID,
		d.Title,
		d.Description,
		d.FoodType,
		d.Quantity,
		d.Unit,
		d.ExpiryDate,
		d.PickupAddress,
		d.PickupTime,
		d.Status,
		d.ImageURL,
		d.CreatedAt,
	)
	if err != nil {
		r.logger.Error("create donation failed", "donorID", d.DonorID, "error", err.Error())
		return utils.ErrDatabaseInsert
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("read donation id failed", "donorID", d.DonorID, "error", err.Error())
		return utils.ErrDatabaseInsert
	}
	d.ID = uint(id)
	return nil
}

// GetDonorProfile loads the donor's public fields; ErrDonorProfileNotFound when
// no user with the donor role matches
func (r *DonationRepository) GetDonorProfile(ctx context.Context, donorID uint) (*models.DonorProfile, error) {
	query := `SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.phone, r.name, u.created_at
			  FROM users u
			  JOIN roles r ON u.role_id = r.id
			  WHERE u.id = ? AND r.name = 'donor'`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.DonorProfile
	var phone sql.NullString
	err := r.db.DB.QueryRowContext(ctx, query, donorID).Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&phone,
		&p.RoleName,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrDonorProfileNotFound
		}
		r.logger.Error("get donor profile failed", "donorID", donorID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	return &p, nil
}

// GetStats counts the donor's donations per status
func (r *DonationRepository) GetStats(ctx context.Context, donorID uint) (models.DonationStats, error) {
	query := `SELECT COUNT(*),
			  COALESCE(SUM(CASE WHEN status = 'current' THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN status = 'donated' THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN status = 'expired' THEN 1 ELSE 0 END), 0)
			  FROM donations WHERE donor_id = ?`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.DonationStats
	if err := r.db.DB.QueryRowContext(ctx, query, donorID).Scan(&s.Total, &s.Current, &s.Donated, &s.Expired); err != nil {
		r.logger.Error("donation stats failed", "donorID", donorID, "error", err.Error())
		return models.DonationStats{}, utils.ErrDatabaseQuery
	}
	return s, nil
}
