package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrSignature is returned for a webhook whose signature does not match.
	ErrSignature = errors.New("invalid webhook signature")

	// ErrIgnoredEvent is returned for webhook events that credit nothing.
	ErrIgnoredEvent = errors.New("webhook event ignored")
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Razorpay-Signature"

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against body in constant time.
func VerifySignature(secret, body []byte, signature string) error {
	if len(secret) == 0 || signature == "" {
		return ErrSignature
	}
	if !hmac.Equal([]byte(Sign(secret, body)), []byte(signature)) {
		return ErrSignature
	}
	return nil
}

// Captured is a successful payment reported by webhook.
type Captured struct {
	PaymentID   string
	AmountPaise int64
	Pack        Pack
}

// ParseWebhook extracts a captured payment from a verified webhook body.
// The pack comes from the "pack" note set at checkout, falling back to the
// amount. Events other than payment.captured return ErrIgnoredEvent.
func ParseWebhook(body []byte) (Captured, error) {
	if !gjson.ValidBytes(body) {
		return Captured{}, fmt.Errorf("malformed webhook body")
	}
	doc := gjson.ParseBytes(body)
	if ev := doc.Get("event").String(); ev != "payment.captured" {
		return Captured{}, fmt.Errorf("%w: %q", ErrIgnoredEvent, ev)
	}

	entity := doc.Get("payload.payment.entity")
	c := Captured{
		PaymentID:   entity.Get("id").String(),
		AmountPaise: entity.Get("amount").Int(),
	}
	if c.PaymentID == "" {
		return Captured{}, fmt.Errorf("webhook without payment id")
	}
	if cur := entity.Get("currency").String(); cur != "" && cur != Currency {
		return Captured{}, fmt.Errorf("%w: currency %s", ErrIgnoredEvent, cur)
	}

	pack, ok := Lookup(entity.Get("notes.pack").String())
	if !ok {
		pack, ok = LookupByPrice(c.AmountPaise)
	}
	if !ok {
		return Captured{}, fmt.Errorf("%w: amount %d", ErrUnknownPack, c.AmountPaise)
	}
	if pack.PricePaise != c.AmountPaise {
		return Captured{}, fmt.Errorf("%w: paid %d for %s", ErrFailed, c.AmountPaise, pack.ID)
	}
	c.Pack = pack
	return c, nil
}
