package pricing

import (
	"errors"
	"testing"

	"github.com/josiasngenda250/sentir-order-app/internal/model"
)

func TestUnitPrices(t *testing.T) {
	tests := []struct {
		code model.ProductCode
		want int
	}{
		{model.ProductLatte, 30},
		{model.ProductStrawberryMatcha, 30},
		{model.ProductMango, 30},
		{model.ProductTrio, 77},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.UnitPrice(); got != tt.want {
				t.Fatalf("UnitPrice(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestVerify_OK(t *testing.T) {
	tests := []struct {
		name  string
		order model.Order
	}{
		{
			name: "two lattes with shipping",
			order: model.Order{
				ProductCode:  model.ProductLatte,
				Quantity:     2,
				ShippingCost: 14,
				ItemSubtotal: 60,
				OrderTotal:   74,
			},
		},
		{
			name: "trio with free local shipping",
			order: model.Order{
				ProductCode:  model.ProductTrio,
				Quantity:     1,
				ShippingCost: 0,
				ItemSubtotal: 77,
				OrderTotal:   77,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(&tt.order); err != nil {
				t.Fatalf("Verify error: %v", err)
			}
		})
	}
}

func TestVerify_Mismatch(t *testing.T) {
	order := model.Order{
		ProductCode:  model.ProductMango,
		Quantity:     1,
		ShippingCost: 14,
		ItemSubtotal: 30,
		OrderTotal:   50, // клиент насчитал лишнего: должно быть 44
	}

	err := Verify(&order)
	if err == nil {
		t.Fatalf("expected mismatch error")
	}

	var merr *MismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("error type = %T, want *MismatchError", err)
	}

	if merr.RecomputedSubtotal != 30 || merr.RecomputedTotal != 44 {
		t.Fatalf("recomputed = %d/%d, want 30/44", merr.RecomputedSubtotal, merr.RecomputedTotal)
	}
	if merr.ReceivedSubtotal != 30 || merr.ReceivedTotal != 50 {
		t.Fatalf("received = %d/%d, want 30/50", merr.ReceivedSubtotal, merr.ReceivedTotal)
	}
}

func TestVerify_SubtotalMismatch(t *testing.T) {
	order := model.Order{
		ProductCode:  model.ProductTrio,
		Quantity:     2,
		ShippingCost: 0,
		ItemSubtotal: 77, // за два набора должно быть 154
		OrderTotal:   77,
	}

	var merr *MismatchError
	if !errors.As(Verify(&order), &merr) {
		t.Fatalf("expected *MismatchError")
	}
	if merr.RecomputedSubtotal != 154 {
		t.Fatalf("recomputed subtotal = %d, want 154", merr.RecomputedSubtotal)
	}
}
