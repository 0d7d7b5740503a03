package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrVendorInUse is returned when a vendor still has payouts referencing it.
var ErrVendorInUse = errors.New("vendor is referenced by payouts")

// VendorRepository is the persistence contract of the vendor directory.
type VendorRepository interface {
	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListVendors(ctx context.Context, activeOnly bool) ([]models.Vendor, error)
	UpdateVendor(ctx context.Context, vendor *models.Vendor) error
	DeleteVendor(ctx context.Context, id uuid.UUID) (int64, error)
}

type VendorService struct {
	repo VendorRepository
}

func NewVendorService(repo VendorRepository) *VendorService {
	return &VendorService{repo: repo}
}

// VendorInput carries the editable vendor fields. Update replaces all of them.
type VendorInput struct {
	Name        string
	UPIID       *string
	BankAccount *string
	IFSC        *string
	IsActive    *bool
}

func (in VendorInput) apply(op string, v *models.Vendor) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ValidationError(op, "name is required")
	}
	v.Name = name
	v.UPIID = trimmedOrNil(in.UPIID)
	v.BankAccount = trimmedOrNil(in.BankAccount)
	v.IFSC = trimmedOrNil(in.IFSC)
	v.IsActive = true
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	return nil
}

func (s *VendorService) CreateVendor(ctx context.Context, in VendorInput) (*models.Vendor, error) {
	const op = "create vendor"
	vendor := &models.Vendor{ID: uuid.New()}
	if err := in.apply(op, vendor); err != nil {
		return nil, err
	}
	if err := s.repo.CreateVendor(ctx, vendor); err != nil {
		return nil, domain.StorageError(op, err)
	}
	zap.L().Info("vendor created", zap.String("vendor_id", vendor.ID.String()))
	return vendor, nil
}

func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	const op = "get vendor"
	vendor, err := s.repo.GetVendor(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFoundError(op, "vendor")
		}
		return nil, domain.StorageError(op, err)
	}
	return vendor, nil
}

func (s *VendorService) ListVendors(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx, activeOnly)
	if err != nil {
		return nil, domain.StorageError("list vendors", err)
	}
	return vendors, nil
}

func (s *VendorService) UpdateVendor(ctx context.Context, id uuid.UUID, in VendorInput) (*models.Vendor, error) {
	const op = "update vendor"
	vendor := &models.Vendor{ID: id}
	if err := in.apply(op, vendor); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateVendor(ctx, vendor); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFoundError(op, "vendor")
		}
		return nil, domain.StorageError(op, err)
	}
	return vendor, nil
}

// DeleteVendor removes a vendor that no payout references.
func (s *VendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	const op = "delete vendor"
	n, err := s.repo.DeleteVendor(ctx, id)
	if err != nil {
		if pgErrorCode(err) == "23503" {
			return ErrVendorInUse
		}
		return domain.StorageError(op, err)
	}
	if n == 0 {
		return domain.NotFoundError(op, "vendor")
	}
	zap.L().Info("vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}
