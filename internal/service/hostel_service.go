package service

import (
	"context"

	"roomi/internal/entity"
	"roomi/internal/repository"

	"github.com/google/uuid"
)

type CreateHostelInput struct {
	Name         string
	City         string
	Address      string
	Description  string
	GenderPolicy string
	MonthlyRent  int
}

type HostelService struct {
	hostels repository.HostelRepository
	users   repository.UserRepository
}

func NewHostelService(hostels repository.HostelRepository, users repository.UserRepository) *HostelService {
	return &HostelService{hostels: hostels, users: users}
}

// Create adds a listing for the owner, enforcing the per-owner cap
// stored on the account (2 by default).
func (s *HostelService) Create(ctx context.Context, ownerID uuid.UUID, input CreateHostelInput) (*entity.Hostel, error) {
	if input.Name == "" || input.City == "" {
		return nil, ErrInvalidInput
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}
	if owner.UserType != entity.UserTypeHostelOwner {
		return nil, ErrNotHostelOwner
	}

	count, err := s.hostels.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= int64(owner.MaxHostels) {
		return nil, ErrHostelLimitReached
	}

	hostel := &entity.Hostel{
		OwnerID:      ownerID,
		Name:         input.Name,
		City:         input.City,
		Address:      input.Address,
		Description:  input.Description,
		GenderPolicy: input.GenderPolicy,
		MonthlyRent:  input.MonthlyRent,
	}
	if err := s.hostels.Create(ctx, hostel); err != nil {
		return nil, err
	}
	return hostel, nil
}

func (s *HostelService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]entity.Hostel, error) {
	return s.hostels.ListByOwner(ctx, ownerID)
}

func (s *HostelService) Search(ctx context.Context, city string, limit, offset int) ([]entity.Hostel, error) {
	return s.hostels.Search(ctx, city, limit, offset)
}

func (s *HostelService) Get(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	hostel, err := s.hostels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hostel == nil {
		return nil, ErrHostelNotFound
	}
	return hostel, nil
}

// Delete removes the listing if it belongs to the caller. A listing
// owned by someone else is reported as not found.
func (s *HostelService) Delete(ctx context.Context, ownerID, hostelID uuid.UUID) error {
	hostel, err := s.hostels.FindByID(ctx, hostelID)
	if err != nil {
		return err
	}
	if hostel == nil || hostel.OwnerID != ownerID {
		return ErrHostelNotFound
	}
	return s.hostels.Delete(ctx, hostelID)
}
