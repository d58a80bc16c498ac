package pool

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/money"
)

const (
	maxNameLength         = 255
	maxSampleSourceLength = 255
	maxBatchNumberLength  = 100
)

// Pool is a crowdfunding target for testing one sample batch. Amounts are
// minor currency units.
type Pool struct {
	id                string
	name              string
	sampleSource      string
	batchNumber       string
	description       string
	poolPrice         *int64
	amountReceived    int64
	status            Status
	totalContributors int
	isActive          bool
	isApproved        bool
	categoryID        string
	sampleImageID     *string
	userID            string
	createdAt         time.Time
	updatedAt         time.Time
	deletedAt         *time.Time
}

type NewPoolParams struct {
	Name          string
	SampleSource  string
	BatchNumber   string
	Description   string
	CategoryID    string
	SampleImageID *string
	UserID        string
}

// NewPool creates an unpriced, unapproved pool owned by UserID.
func NewPool(p NewPoolParams) (*Pool, error) {
	if err := validateText(p.Name, p.SampleSource, p.BatchNumber); err != nil {
		return nil, err
	}
	if p.CategoryID == "" {
		return nil, errors.NewValidationError("category is required")
	}
	if p.UserID == "" {
		return nil, errors.NewValidationError("owner is required")
	}

	now := time.Now().UTC()
	return &Pool{
		name:          strings.TrimSpace(p.Name),
		sampleSource:  strings.TrimSpace(p.SampleSource),
		batchNumber:   strings.TrimSpace(p.BatchNumber),
		description:   p.Description,
		status:        StatusCreated,
		isActive:      true,
		categoryID:    p.CategoryID,
		sampleImageID: p.SampleImageID,
		userID:        p.UserID,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type PoolReconstructParams struct {
	ID                string
	Name              string
	SampleSource      string
	BatchNumber       string
	Description       string
	PoolPrice         *int64
	AmountReceived    int64
	Status            Status
	TotalContributors int
	IsActive          bool
	IsApproved        bool
	CategoryID        string
	SampleImageID     *string
	UserID            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

func ReconstructPoolWithParams(p PoolReconstructParams) *Pool {
	return &Pool{
		id:                p.ID,
		name:              p.Name,
		sampleSource:      p.SampleSource,
		batchNumber:       p.BatchNumber,
		description:       p.Description,
		poolPrice:         p.PoolPrice,
		amountReceived:    p.AmountReceived,
		status:            p.Status,
		totalContributors: p.TotalContributors,
		isActive:          p.IsActive,
		isApproved:        p.IsApproved,
		categoryID:        p.CategoryID,
		sampleImageID:     p.SampleImageID,
		userID:            p.UserID,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
		deletedAt:         p.DeletedAt,
	}
}

func validateText(name, sampleSource, batchNumber string) error {
	switch {
	case len(strings.TrimSpace(name)) < 2:
		return errors.NewValidationError("pool name must be at least 2 characters")
	case len(name) > maxNameLength:
		return errors.NewValidationError("pool name too long (max 255 characters)")
	case strings.TrimSpace(sampleSource) == "":
		return errors.NewValidationError("sample source is required")
	case len(sampleSource) > maxSampleSourceLength:
		return errors.NewValidationError("sample source too long (max 255 characters)")
	case strings.TrimSpace(batchNumber) == "":
		return errors.NewValidationError("batch number is required")
	case len(batchNumber) > maxBatchNumberLength:
		return errors.NewValidationError("batch number too long (max 100 characters)")
	}
	return nil
}

func (p *Pool) ID() string { return p.id }
func (p *Pool) Name() string { return p.name }
func (p *Pool) SampleSource() string { return p.sampleSource }
func (p *Pool) BatchNumber() string { return p.batchNumber }
func (p *Pool) Description() string { return p.description }
func (p *Pool) PoolPrice() *int64 { return p.poolPrice }
func (p *Pool) AmountReceived() int64 { return p.amountReceived }
func (p *Pool) Status() Status { return p.status }
func (p *Pool) TotalContributors() int { return p.totalContributors }
func (p *Pool) IsActive() bool { return p.isActive }
func (p *Pool) IsApproved() bool { return p.isApproved }
func (p *Pool) CategoryID() string { return p.categoryID }
func (p *Pool) SampleImageID() *string { return p.sampleImageID }
func (p *Pool) UserID() string { return p.userID }
func (p *Pool) CreatedAt() time.Time { return p.createdAt }
func (p *Pool) UpdatedAt() time.Time { return p.updatedAt }
func (p *Pool) DeletedAt() *time.Time { return p.deletedAt }

func (p *Pool) SetID(id string) error {
	if p.id != "" {
		return errors.NewInternalError("pool ID is already set")
	}
	p.id = id
	return nil
}

func (p *Pool) IsOwnedBy(userID string) bool {
	return userID != "" && p.userID == userID
}

// RemainingAmount is poolPrice minus amountReceived, never negative.
// An unpriced pool has nothing remaining.
func (p *Pool) RemainingAmount() int64 {
	if p.poolPrice == nil {
		return 0
	}
	if rem := *p.poolPrice - p.amountReceived; rem > 0 {
		return rem
	}
	return 0
}

// PercentageReached is capped at 100 and rounded to two decimals.
func (p *Pool) PercentageReached() float64 {
	if p.poolPrice == nil || *p.poolPrice <= 0 {
		return 0
	}
	pct := float64(p.amountReceived) * 100 / float64(*p.poolPrice)
	if pct > 100 {
		pct = 100
	}
	return float64(int64(pct*100+0.5)) / 100
}

// CheckAcceptsDonation runs the acceptance checks for a donation of amount
// minor units, in order.
func (p *Pool) CheckAcceptsDonation(amount int64) error {
	if !p.isActive || !p.isApproved {
		return errors.NewValidationError("Pool is not accepting donations")
	}
	if p.poolPrice == nil {
		return errors.NewValidationError("Pool price is not set")
	}
	if p.status == StatusTargetReached {
		return errors.NewValidationError("Pool has already reached its target")
	}
	remaining := p.RemainingAmount()
	if remaining <= 0 {
		return errors.NewValidationError("Pool has already reached its target amount")
	}
	if amount <= 0 {
		return errors.NewValidationError("Donation amount must be positive")
	}
	if amount > remaining {
		return errors.NewValidationError(
			"Donation amount exceeds remaining pool amount. Maximum allowed: " + money.Format(remaining))
	}
	return nil
}

// Credit applies one successful donation to the in-memory aggregate. It
// mirrors the SQL update the repository performs.
func (p *Pool) Credit(amount int64) {
	p.amountReceived += amount
	p.totalContributors++
	if p.status == StatusCreated {
		p.status = StatusFunding
	}
	if p.poolPrice != nil && p.amountReceived >= *p.poolPrice && p.status == StatusFunding {
		p.status = StatusTargetReached
	}
	p.updatedAt = time.Now().UTC()
}

type PoolUpdate struct {
	Name          *string
	SampleSource  *string
	BatchNumber   *string
	Description   *string
	CategoryID    *string
	SampleImageID *string
	Status        *Status
	PoolPrice     *int64
	IsActive      *bool
	IsApproved    *bool
}

func (p *Pool) Apply(u PoolUpdate) error {
	name, source, batch := p.name, p.sampleSource, p.batchNumber
	if u.Name != nil {
		name = *u.Name
	}
	if u.SampleSource != nil {
		source = *u.SampleSource
	}
	if u.BatchNumber != nil {
		batch = *u.BatchNumber
	}
	if err := validateText(name, source, batch); err != nil {
		return err
	}
	if u.Status != nil && !u.Status.IsValid() {
		return errors.NewValidationError("invalid pool status", u.Status.String())
	}
	if u.PoolPrice != nil && *u.PoolPrice <= 0 {
		return errors.NewValidationError("pool price must be positive")
	}

	p.name = strings.TrimSpace(name)
	p.sampleSource = strings.TrimSpace(source)
	p.batchNumber = strings.TrimSpace(batch)
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.CategoryID != nil {
		p.categoryID = *u.CategoryID
	}
	if u.SampleImageID != nil {
		p.sampleImageID = u.SampleImageID
	}
	if u.Status != nil {
		p.status = *u.Status
	}
	if u.PoolPrice != nil {
		price := *u.PoolPrice
		p.poolPrice = &price
	}
	if u.IsActive != nil {
		p.isActive = *u.IsActive
	}
	if u.IsApproved != nil {
		p.isApproved = *u.IsApproved
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

func (p *Pool) Approve() {
	p.isApproved = true
	p.updatedAt = time.Now().UTC()
}

func (p *Pool) Reject() {
	p.isApproved = false
	p.updatedAt = time.Now().UTC()
}
