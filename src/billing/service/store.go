package billing_service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrMemberNotFound  = errors.New("member not found")
	// ErrNotVehicleOwner distinguishes ownership failures from not-found so
	// handlers can answer 403 instead of 404.
	ErrNotVehicleOwner = errors.New("vehicle does not belong to the calling member")
)

// Store is the record-store boundary of the reconciliation engine. Writes
// are merge-updates by key; there are no cross-record transactions, which
// is why every billing write carries a complete, self-consistent tuple.
type Store interface {
	Vehicle(ctx context.Context, id uuid.UUID) (*vehicle_entity.Vehicle, error)

	// MergeVehicleBilling merge-writes the given billing fields onto the
	// vehicle, leaving every other field untouched.
	MergeVehicleBilling(ctx context.Context, vehicleID uuid.UUID, fields map[string]any) error

	Member(ctx context.Context, id uuid.UUID) (*member_entity.Member, error)

	// SetMemberCustomerID records the billing customer mapping, write-once:
	// an existing mapping is never overwritten.
	SetMemberCustomerID(ctx context.Context, memberID uuid.UUID, customerID string) error
}

// GormStore implements Store on the Postgres record store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Vehicle(ctx context.Context, id uuid.UUID) (*vehicle_entity.Vehicle, error) {
	var vehicle vehicle_entity.Vehicle
	err := s.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *GormStore) MergeVehicleBilling(ctx context.Context, vehicleID uuid.UUID, fields map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&vehicle_entity.Vehicle{}).
		Where("id = ?", vehicleID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (s *GormStore) Member(ctx context.Context, id uuid.UUID) (*member_entity.Member, error) {
	var member member_entity.Member
	err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *GormStore) SetMemberCustomerID(ctx context.Context, memberID uuid.UUID, customerID string) error {
	// Guarded write: at most one billing customer id is ever recorded for a
	// member. Concurrent writers race on the guard, not on the value.
	return s.db.WithContext(ctx).
		Model(&member_entity.Member{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = '')", memberID).
		Update("stripe_customer_id", customerID).Error
}
