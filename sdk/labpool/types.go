// Package labpool provides a Go SDK for the LabPool donation API.
package labpool

import "time"

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Category is the sample product a pool tests.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Pool is the caller's view of a pool. Moderation fields are only filled
// for admins.
type Pool struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SampleSource      string    `json:"sampleSource"`
	BatchNumber       string    `json:"batchNumber"`
	Description       string    `json:"description,omitempty"`
	DescriptionHTML   string    `json:"descriptionHtml,omitempty"`
	PoolPrice         *float64  `json:"poolPrice"`
	AmountReceived    float64   `json:"amountReceived"`
	Status            string    `json:"status"`
	TotalContributors int64     `json:"totalContributors"`
	Category          *Category `json:"category,omitempty"`
	IsApproved        *bool     `json:"isApproved,omitempty"`
	UserID            string    `json:"userId,omitempty"`
}

// Donation is the caller's view of a donation.
type Donation struct {
	ID                 string    `json:"id"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	Message            string    `json:"message"`
	Status             string    `json:"status"`
	PoolID             string    `json:"poolId"`
	UserID             string    `json:"userId,omitempty"`
	AnonymousDonorName string    `json:"anonymousDonorName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PoolStats summarizes funding progress.
type PoolStats struct {
	PoolID            string      `json:"poolId"`
	PoolName          string      `json:"poolName"`
	PoolPrice         *float64    `json:"poolPrice"`
	AmountReceived    float64     `json:"amountReceived"`
	RemainingAmount   float64     `json:"remainingAmount"`
	PercentageReached float64     `json:"percentageReached"`
	TotalDonations    int64       `json:"totalDonations"`
	Donations         []*Donation `json:"donations"`
}

// OrderRequest starts a checkout. Amount is in major units with at most
// two decimals. Anonymous donors must supply a name and email.
type OrderRequest struct {
	PoolID              string  `json:"poolId"`
	Amount              float64 `json:"amount"`
	Message             string  `json:"message,omitempty"`
	AnonymousDonorName  string  `json:"anonymousDonorName,omitempty"`
	AnonymousDonorEmail string  `json:"anonymousDonorEmail,omitempty"`
	AnonymousDonorPhone string  `json:"anonymousDonorPhone,omitempty"`
}

// Order is what the browser checkout needs. Amount is in minor units.
type Order struct {
	DonationID string `json:"donationId"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	KeyID      string `json:"keyId"`
}

// PaymentConfirmation carries the provider callback fields.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`
}

// VerifyResult is returned by VerifyPayment.
type VerifyResult struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Donation *Donation `json:"donation"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type apiResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    rawMessage `json:"data,omitempty"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
