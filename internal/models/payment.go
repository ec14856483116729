package models

import "time"

type Currency string

const (
	CurrencyRUB Currency = "RUB"
)

// SettlementDetails is the card and amount a payer is instructed to pay into.
// Immutable once produced by a provider.
type SettlementDetails struct {
	CardNumber   string   `json:"cardNumber"`
	Amount       float64  `json:"amount"`
	Currency     Currency `json:"currency"`
	ProviderName string   `json:"providerName"`
}

// PaymentSession links an opaque id to settlement details for a bounded time.
type PaymentSession struct {
	ID        string            `json:"id"`
	Details   SettlementDetails `json:"details"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func (s *PaymentSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type ProvisionRequest struct {
	Amount float64 `json:"amount"`
}

type ConfirmRequest struct {
	PaymentID string `json:"paymentId"`
}

type CancelRequest struct {
	PaymentID string `json:"paymentId"`
}

type ProvisionResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"paymentUrl,omitempty"`
	Message    string `json:"message,omitempty"`
}

type SessionResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    *SettlementDetails `json:"data,omitempty"`
}
