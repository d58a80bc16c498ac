package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/labpool/labpool/internal/domain/donation"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/shared/mapper"
)

func DonationToModel(d *donation.Donation) *models.DonationModel {
	donor := d.Donor()
	return &models.DonationModel{
		ID:                  d.ID(),
		Amount:              d.Amount(),
		Currency:            d.Currency(),
		Message:             d.Message(),
		Status:              d.Status().String(),
		PoolID:              d.PoolID(),
		UserID:              mapper.Ptr(donor.UserID),
		AnonymousDonorName:  mapper.Ptr(donor.Name),
		AnonymousDonorEmail: mapper.Ptr(donor.Email),
		AnonymousDonorPhone: mapper.Ptr(donor.Phone),
		ProviderOrderID:     mapper.Ptr(d.ProviderOrderID()),
		ProviderPaymentID:   mapper.Ptr(d.ProviderPaymentID()),
		ProviderSignature:   mapper.Ptr(d.ProviderSignature()),
		Notes:               notesToJSON(d.Notes()),
		CreatedAt:           d.CreatedAt(),
		UpdatedAt:           d.UpdatedAt(),
	}
}

func DonationToDomain(m *models.DonationModel) *donation.Donation {
	return donation.ReconstructDonationWithParams(donation.DonationReconstructParams{
		ID:       m.ID,
		Amount:   m.Amount,
		Currency: m.Currency,
		Message:  m.Message,
		Status:   donation.Status(m.Status),
		PoolID:   m.PoolID,
		Donor: donation.Donor{
			UserID: mapper.Deref(m.UserID),
			Name:   mapper.Deref(m.AnonymousDonorName),
			Email:  mapper.Deref(m.AnonymousDonorEmail),
			Phone:  mapper.Deref(m.AnonymousDonorPhone),
		},
		ProviderOrderID:   mapper.Deref(m.ProviderOrderID),
		ProviderPaymentID: mapper.Deref(m.ProviderPaymentID),
		ProviderSignature: mapper.Deref(m.ProviderSignature),
		Notes:             notesFromJSON(m.Notes),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	})
}

func notesToJSON(notes map[string]string) datatypes.JSONMap {
	if len(notes) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}

func notesFromJSON(m datatypes.JSONMap) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
