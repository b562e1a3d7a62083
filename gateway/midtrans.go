// Package gateway wraps the external payment processor. The portal only
// initiates checkouts here; everything after the redirect (capture,
// settlement, expiry) reaches us through the webhook.
package gateway

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"math"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	snapClient snap.Client
	serverKey  string
)

// Init must be called at bootstrap. useProduction selects the Midtrans
// environment; the sandbox is the default for local development. The
// server key is kept for webhook signature verification.
func Init(key string, useProduction bool) {
	serverKey = key
	if useProduction {
		snapClient.New(key, midtrans.Production)
	} else {
		snapClient.New(key, midtrans.Sandbox)
	}
}

// VerifySignature checks a webhook notification's signature_key:
// SHA512(order_id + status_code + gross_amount + server key). Notifications
// without a valid signature must be rejected before any state is touched.
func VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return verifySignature(orderID, statusCode, grossAmount, signatureKey, serverKey)
}

func verifySignature(orderID, statusCode, grossAmount, signatureKey, key string) bool {
	if signatureKey == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + key))
	return hex.EncodeToString(sum[:]) == strings.ToLower(signatureKey)
}

// CheckoutRequest carries the fields the gateway needs for one payment.
type CheckoutRequest struct {
	OrderID     string
	Amount      float64
	Description string
	FirstName   string
	LastName    string
	Email       string
}

// CreateCheckout asks the gateway for a hosted checkout session and returns
// the snap token plus the redirect URL the tenant is sent to.
func CreateCheckout(in CheckoutRequest) (token, redirectURL string, err error) {
	if in.Amount <= 0 {
		return "", "", errors.New("invalid checkout amount")
	}
	if in.OrderID == "" {
		return "", "", errors.New("order id is required")
	}

	gross := int64(math.Round(in.Amount))
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.FirstName,
			LName: in.LastName,
			Email: in.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    in.OrderID,
				Price: gross,
				Qty:   1,
				Name:  itemName(in.Description),
			},
		},
	}

	resp, merr := snapClient.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

func itemName(desc string) string {
	if desc == "" {
		return "Rental payment"
	}
	if len(desc) > 50 {
		return desc[:50]
	}
	return desc
}
