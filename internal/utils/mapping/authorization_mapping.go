package mapping

import (
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/models"
)

// ToModelAuthorization converts a domain AuthorizationRequest to a model AuthorizationRequest
func ToModelAuthorization(d domain.AuthorizationRequest) models.AuthorizationRequest {
	m := models.AuthorizationRequest{
		ID:                 d.ID,
		SKU:                d.SKU,
		TransportMode:      string(d.TransportMode),
		RequesterID:        d.RequesterID,
		RequesterRole:      string(d.RequesterRole),
		EscalatedTo:        string(d.EscalatedTo),
		ProposedPrice:      d.ProposedPrice,
		ReferenceThreshold: d.ReferenceThreshold,
		DiscountPct:        d.DiscountPct,
		Client:             d.Client,
		Justification:      d.Justification,
		Status:             string(d.Status),
		ApproverID:         d.ApproverID,
		ResolvedAt:         d.ResolvedAt,
		Comments:           d.Comments,
		CreatedAt:          d.CreatedAt,
	}
	if d.Quantity != nil {
		q := int32(*d.Quantity)
		m.Quantity = &q
	}
	if d.ApproverRole != nil {
		role := string(*d.ApproverRole)
		m.ApproverRole = &role
	}
	return m
}

// ToDomainAuthorization converts a model AuthorizationRequest to a domain AuthorizationRequest
func ToDomainAuthorization(m models.AuthorizationRequest) domain.AuthorizationRequest {
	d := domain.AuthorizationRequest{
		ID:                 m.ID,
		SKU:                m.SKU,
		TransportMode:      domain.TransportMode(m.TransportMode),
		RequesterID:        m.RequesterID,
		RequesterRole:      domain.Role(m.RequesterRole),
		EscalatedTo:        domain.Role(m.EscalatedTo),
		ProposedPrice:      m.ProposedPrice,
		ReferenceThreshold: m.ReferenceThreshold,
		DiscountPct:        m.DiscountPct,
		Client:             m.Client,
		Justification:      m.Justification,
		Status:             domain.AuthorizationStatus(m.Status),
		ApproverID:         m.ApproverID,
		ResolvedAt:         m.ResolvedAt,
		Comments:           m.Comments,
		CreatedAt:          m.CreatedAt,
	}
	if m.Quantity != nil {
		q := int(*m.Quantity)
		d.Quantity = &q
	}
	if m.ApproverRole != nil {
		role := domain.Role(*m.ApproverRole)
		d.ApproverRole = &role
	}
	return d
}

// ToDomainAuthorizations converts a slice of rows.
func ToDomainAuthorizations(ms []models.AuthorizationRequest) []domain.AuthorizationRequest {
	out := make([]domain.AuthorizationRequest, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAuthorization(m)
	}
	return out
}
