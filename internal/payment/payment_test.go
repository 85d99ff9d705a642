package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPacks(t *testing.T) {
	tests := []struct {
		id    string
		total int
		price string
	}{
		{"starter", 50, "₹29"},
		{"student", 120, "₹69"},
		{"pro", 300, "₹149"},
		{"career", 800, "₹349"},
	}
	for _, tt := range tests {
		p, ok := Lookup(tt.id)
		if !ok {
			t.Fatalf("pack %q missing", tt.id)
		}
		if p.Total() != tt.total || p.Price() != tt.price {
			t.Errorf("%s: total %d price %s, want %d %s", tt.id, p.Total(), p.Price(), tt.total, tt.price)
		}
	}
	if p, _ := Lookup("STUDENT"); !p.Popular {
		t.Error("student pack should be marked popular")
	}
	if _, ok := Lookup("mega"); ok {
		t.Error("unknown pack found")
	}
}

func TestCheckout_SuccessCredits(t *testing.T) {
	pack, _ := Lookup("pro")
	var got Confirmation
	var credited int

	err := Checkout(context.Background(), TestModeWidget{}, "rzp_test", pack, Buyer{Name: "Asha"}, func(c Confirmation, p Pack) error {
		got = c
		credited = p.Total()
		return nil
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !strings.HasPrefix(got.PaymentID, "pay_") || !strings.HasPrefix(got.OrderID, "order_") {
		t.Fatalf("confirmation = %+v", got)
	}
	if credited != 300 {
		t.Fatalf("credited %d, want 300", credited)
	}
}

func TestCheckout_FailureNeverCredits(t *testing.T) {
	pack, _ := Lookup("starter")
	called := false
	onSuccess := func(Confirmation, Pack) error { called = true; return nil }

	err := Checkout(context.Background(), TestModeWidget{Decline: true}, "", pack, Buyer{}, onSuccess)
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("declined: got %v, want ErrFailed", err)
	}

	err = Checkout(context.Background(), PromptWidget{In: strings.NewReader("n\n"), Out: &strings.Builder{}}, "", pack, Buyer{}, onSuccess)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("cancelled: got %v, want ErrCancelled", err)
	}

	err = Checkout(context.Background(), TestModeWidget{}, "", Pack{ID: "bogus"}, Buyer{}, onSuccess)
	if !errors.Is(err, ErrUnknownPack) {
		t.Fatalf("bogus pack: got %v", err)
	}

	if called {
		t.Fatal("onSuccess ran for a payment that did not complete")
	}
}

func TestPromptWidget_Approves(t *testing.T) {
	var out strings.Builder
	w := PromptWidget{In: strings.NewReader("yes\n"), Out: &out}
	conf, err := w.Pay(context.Background(), Order{ID: "order_1", AmountPaise: 6900, Currency: Currency, Description: "Student Pack - 120 Diamonds"})
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if conf.PaymentID == "" {
		t.Fatal("missing payment id")
	}
	if !strings.Contains(out.String(), "₹69") {
		t.Fatalf("prompt = %q", out.String())
	}
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("whsec")
	body := []byte(`{"event":"payment.captured"}`)
	sig := Sign(secret, body)

	if err := VerifySignature(secret, body, sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := VerifySignature(secret, append(body, ' '), sig); !errors.Is(err, ErrSignature) {
		t.Fatalf("tampered body: got %v", err)
	}
	if err := VerifySignature([]byte("other"), body, sig); !errors.Is(err, ErrSignature) {
		t.Fatalf("wrong secret: got %v", err)
	}
	if err := VerifySignature(nil, body, sig); !errors.Is(err, ErrSignature) {
		t.Fatalf("empty secret: got %v", err)
	}
}

func TestParseWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_abc","amount":6900,"currency":"INR","notes":{"pack":"student"}}}}}`)
	c, err := ParseWebhook(body)
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if c.PaymentID != "pay_abc" || c.Pack.ID != "student" || c.Pack.Total() != 120 {
		t.Fatalf("captured = %+v", c)
	}

	byAmount := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_x","amount":34900}}}}`)
	if c, err := ParseWebhook(byAmount); err != nil || c.Pack.ID != "career" {
		t.Fatalf("by amount: %+v, %v", c, err)
	}

	tests := []struct {
		name string
		body string
		want error
	}{
		{"other event", `{"event":"payment.failed"}`, ErrIgnoredEvent},
		{"unknown amount", `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"p","amount":100}}}}`, ErrUnknownPack},
		{"underpaid", `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"p","amount":2900,"notes":{"pack":"career"}}}}}`, ErrFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWebhook([]byte(tt.body)); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := ParseWebhook([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
