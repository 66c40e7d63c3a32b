package dto

import (
	"time"

	"roomi/internal/entity"
)

type CreateHostelRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	City         string `json:"city" validate:"required,max=50"`
	Address      string `json:"address" validate:"omitempty,max=500"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
	GenderPolicy string `json:"gender_policy" validate:"omitempty,oneof=male female mixed"`
	MonthlyRent  int    `json:"monthly_rent" validate:"omitempty,gte=0"`
}

type HostelResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Address      string    `json:"address,omitempty"`
	Description  string    `json:"description,omitempty"`
	GenderPolicy string    `json:"gender_policy,omitempty"`
	MonthlyRent  int       `json:"monthly_rent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func HostelResponseFromEntity(hostel *entity.Hostel) HostelResponse {
	return HostelResponse{
		ID:           hostel.ID.String(),
		OwnerID:      hostel.OwnerID.String(),
		Name:         hostel.Name,
		City:         hostel.City,
		Address:      hostel.Address,
		Description:  hostel.Description,
		GenderPolicy: hostel.GenderPolicy,
		MonthlyRent:  hostel.MonthlyRent,
		CreatedAt:    hostel.CreatedAt,
	}
}

func HostelResponsesFromEntities(hostels []entity.Hostel) []HostelResponse {
	responses := make([]HostelResponse, 0, len(hostels))
	for i := range hostels {
		responses = append(responses, HostelResponseFromEntity(&hostels[i]))
	}
	return responses
}
