package dto

import (
	"time"

	filedto "github.com/labpool/labpool/internal/application/file/dto"
	spdto "github.com/labpool/labpool/internal/application/sampleproduct/dto"
	userdto "github.com/labpool/labpool/internal/application/user/dto"
	"github.com/labpool/labpool/internal/domain/pool"
	"github.com/labpool/labpool/internal/shared/money"
)

// PoolDTO carries money in major units.
type PoolDTO struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	SampleSource      string                  `json:"sampleSource"`
	BatchNumber       string                  `json:"batchNumber"`
	Description       string                  `json:"description"`
	DescriptionHTML   string                  `json:"descriptionHtml"`
	PoolPrice         *float64                `json:"poolPrice"`
	AmountReceived    float64                 `json:"amountReceived"`
	Status            string                  `json:"status"`
	TotalContributors int                     `json:"totalContributors"`
	IsActive          bool                    `json:"isActive"`
	IsApproved        bool                    `json:"isApproved"`
	Category          *spdto.SampleProductDTO `json:"category"`
	SampleImage       *filedto.FileDTO        `json:"sampleImage"`
	UserID            string                  `json:"userId"`
	User              *userdto.UserDTO        `json:"user,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
	DeletedAt         *time.Time              `json:"deletedAt,omitempty"`
}

// ToPoolDTO maps the scalar fields. Category, image and owner are filled
// by the caller.
func ToPoolDTO(p *pool.Pool, descriptionHTML string) *PoolDTO {
	if p == nil {
		return nil
	}
	var price *float64
	if p.PoolPrice() != nil {
		v := money.ToMajor(*p.PoolPrice())
		price = &v
	}
	return &PoolDTO{
		ID:                p.ID(),
		Name:              p.Name(),
		SampleSource:      p.SampleSource(),
		BatchNumber:       p.BatchNumber(),
		Description:       p.Description(),
		DescriptionHTML:   descriptionHTML,
		PoolPrice:         price,
		AmountReceived:    money.ToMajor(p.AmountReceived()),
		Status:            p.Status().String(),
		TotalContributors: p.TotalContributors(),
		IsActive:          p.IsActive(),
		IsApproved:        p.IsApproved(),
		UserID:            p.UserID(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
		DeletedAt:         p.DeletedAt(),
	}
}

type CreatePoolRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	SampleSource  string  `json:"sampleSource" binding:"required,max=255"`
	BatchNumber   string  `json:"batchNumber" binding:"required,max=100"`
	Description   string  `json:"description"`
	CategoryID    string  `json:"categoryId" binding:"required,uuid"`
	SampleImageID *string `json:"sampleImageId" binding:"omitempty,uuid"`
}

type UpdatePoolRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	SampleSource  *string  `json:"sampleSource" binding:"omitempty,max=255"`
	BatchNumber   *string  `json:"batchNumber" binding:"omitempty,max=100"`
	Description   *string  `json:"description"`
	CategoryID    *string  `json:"categoryId" binding:"omitempty,uuid"`
	SampleImageID *string  `json:"sampleImageId" binding:"omitempty,uuid"`
	Status        *string  `json:"status" binding:"omitempty,oneof=Created Funding 'Target Reached' 'Sent to Lab' 'Results Ready'"`
	PoolPrice     *float64 `json:"poolPrice" binding:"omitempty,gt=0,decimal2"`
	IsActive      *bool    `json:"isActive"`
	IsApproved    *bool    `json:"isApproved"`
}

type ListPoolsRequest struct {
	Page              int
	PageSize          int
	UserID            string
	IncludeInactive   bool
	IncludeDeleted    bool
	IncludeUnapproved bool
}
