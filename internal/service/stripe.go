package service

import (
	"context"

	"tsurigu_back_end/internal/checkout"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripePayments adapts the Stripe PaymentIntent API to the checkout
// PaymentClient contract. The API key is set globally in main.
type StripePayments struct{}

var _ checkout.PaymentClient = (*StripePayments)(nil)

func (StripePayments) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*checkout.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func (StripePayments) GetIntent(ctx context.Context, id string) (*checkout.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func fromStripeIntent(intent *stripe.PaymentIntent) *checkout.Intent {
	return &checkout.Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Metadata:     intent.Metadata,
	}
}
