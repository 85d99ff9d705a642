package payment

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrCancelled is returned when the buyer dismisses the checkout.
	ErrCancelled = errors.New("payment cancelled")

	// ErrFailed is returned when the provider declines the payment.
	ErrFailed = errors.New("payment failed")

	// ErrUnknownPack is returned for a pack ID not in the catalogue.
	ErrUnknownPack = errors.New("unknown diamond pack")
)

// Currency of every order.
const Currency = "INR"

// Buyer prefills the checkout form.
type Buyer struct {
	Name  string
	Phone string
}

// Order is what the widget is asked to collect.
type Order struct {
	ID          string
	KeyID       string
	AmountPaise int64
	Currency    string
	Description string
	Pack        Pack
	Buyer       Buyer
}

// Confirmation is the widget's success response.
type Confirmation struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Widget collects a payment. It returns ErrCancelled or ErrFailed (possibly
// wrapped) when no money moved.
type Widget interface {
	Pay(ctx context.Context, order Order) (Confirmation, error)
}

// Checkout runs the widget for pack and calls onSuccess only after a
// confirmed payment. Failures and cancellations never reach onSuccess.
func Checkout(ctx context.Context, w Widget, keyID string, pack Pack, buyer Buyer, onSuccess func(Confirmation, Pack) error) error {
	if _, ok := Lookup(pack.ID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPack, pack.ID)
	}
	order := Order{
		ID:          "order_" + shortID(),
		KeyID:       keyID,
		AmountPaise: pack.PricePaise,
		Currency:    Currency,
		Description: pack.Description(),
		Pack:        pack,
		Buyer:       buyer,
	}

	conf, err := w.Pay(ctx, order)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return err
		}
		if !errors.Is(err, ErrFailed) {
			err = fmt.Errorf("%w: %w", ErrFailed, err)
		}
		return err
	}
	if conf.PaymentID == "" {
		return fmt.Errorf("%w: missing payment id", ErrFailed)
	}
	if conf.OrderID == "" {
		conf.OrderID = order.ID
	}
	return onSuccess(conf, pack)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

// TestModeWidget approves or declines without contacting a provider, for
// local test-mode purchases.
type TestModeWidget struct {
	Decline bool
}

func (w TestModeWidget) Pay(ctx context.Context, order Order) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if w.Decline {
		return Confirmation{}, fmt.Errorf("%w: declined in test mode", ErrFailed)
	}
	return Confirmation{PaymentID: "pay_" + shortID(), OrderID: order.ID}, nil
}

// PromptWidget asks for confirmation on a terminal and then approves in
// test mode.
type PromptWidget struct {
	In  io.Reader
	Out io.Writer
}

func (w PromptWidget) Pay(ctx context.Context, order Order) (Confirmation, error) {
	fmt.Fprintf(w.Out, "%s for %s (%s). Pay now? [y/N] ",
		order.Description, priceOf(order.AmountPaise), order.Currency)

	line, err := bufio.NewReader(w.In).ReadString('\n')
	if err != nil && line == "" {
		return Confirmation{}, ErrCancelled
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return TestModeWidget{}.Pay(ctx, order)
	default:
		return Confirmation{}, ErrCancelled
	}
}

func priceOf(paise int64) string {
	return Pack{PricePaise: paise}.Price()
}
