package postgres

import (
	"time"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/calllog"
)

type CustomerMappingModel struct {
	ID               int64
	ContactID        int64
	RemoteCustomerID string
	CreatedAt        time.Time
}

type CallLogModel struct {
	ID        int64
	URL       string
	Direction string
	Payload   string
	Success   bool
	LoggedAt  time.Time
}

func toDomainMapping(m CustomerMappingModel) *domain.CustomerMapping {
	return &domain.CustomerMapping{
		ID:               m.ID,
		ContactID:        m.ContactID,
		RemoteCustomerID: m.RemoteCustomerID,
	}
}

func toCallLogModel(e calllog.Entry) CallLogModel {
	loggedAt := e.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}
	return CallLogModel{
		URL:       e.URL,
		Direction: string(e.Direction),
		Payload:   e.Payload,
		Success:   e.Success,
		LoggedAt:  loggedAt.UTC(),
	}
}
