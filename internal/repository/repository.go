package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	PurchaseRequest PurchaseRequestRepository
	Notification    NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		PurchaseRequest: NewPurchaseRequestRepository(db),
		Notification:    NewNotificationRepository(db),
	}
}
