package repository

import (
	"context"
	"fmt"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository holds the hand-written queries for the vendor directory and user accounts.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const vendorColumns = `id, name, upi_id, bank_account, ifsc, is_active, created_at, updated_at`

func scanVendor(row pgx.Row, v *models.Vendor) error {
	return row.Scan(&v.ID, &v.Name, &v.UPIID, &v.BankAccount, &v.IFSC, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
}

func (r *Repository) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	query := `INSERT INTO vendors (id, name, upi_id, bank_account, ifsc, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, vendor.ID, vendor.Name, vendor.UPIID, vendor.BankAccount, vendor.IFSC, vendor.IsActive).
		Scan(&vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *Repository) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	if err := scanVendor(r.db.QueryRow(ctx, query, id), vendor); err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return vendor, nil
}

func (r *Repository) ListVendors(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE ($1 = FALSE OR is_active)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]models.Vendor, 0)
	for rows.Next() {
		var v models.Vendor
		if err := scanVendor(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendors: %w", err)
	}
	return vendors, nil
}

func (r *Repository) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, upi_id = $2, bank_account = $3, ifsc = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + vendorColumns
	err := scanVendor(r.db.QueryRow(ctx, query, vendor.Name, vendor.UPIID, vendor.BankAccount, vendor.IFSC, vendor.IsActive, vendor.ID), vendor)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	return nil
}

// DeleteVendor removes a vendor and reports how many rows were deleted.
// Vendors still referenced by payouts fail with a foreign key violation.
func (r *Repository) DeleteVendor(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vendor: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateUser inserts a user unless the email is taken; it reports whether a row was written.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (bool, error) {
	query := `INSERT INTO users (id, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email) DO NOTHING RETURNING created_at`
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash, string(user.Role)).Scan(&user.CreatedAt)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create user: %w", err)
	}
	return true, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1`, id)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, email, password_hash, role, created_at FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *Repository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := r.db.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Role = domain.Role(role)
	return user, nil
}
