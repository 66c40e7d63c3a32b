package repository

import (
	"context"
	"errors"

	"roomi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HostelRepository interface {
	Create(ctx context.Context, hostel *entity.Hostel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Hostel, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Search(ctx context.Context, city string, limit, offset int) ([]entity.Hostel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type hostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

func (r *hostelRepository) Create(ctx context.Context, hostel *entity.Hostel) error {
	return r.db.WithContext(ctx).Create(hostel).Error
}

func (r *hostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	var hostel entity.Hostel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&hostel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Hostel, error) {
	var hostels []entity.Hostel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&hostels).Error
	return hostels, err
}

func (r *hostelRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Hostel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *hostelRepository) Search(ctx context.Context, city string, limit, offset int) ([]entity.Hostel, error) {
	query := r.db.WithContext(ctx).Model(&entity.Hostel{}).Order("created_at DESC")
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var hostels []entity.Hostel
	err := query.Find(&hostels).Error
	return hostels, err
}

func (r *hostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Hostel{}).Error
}
