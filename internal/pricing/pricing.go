// Package pricing повторно вычисляет стоимость заказа на стороне сервера.
package pricing

import (
	"fmt"

	"github.com/josiasngenda250/sentir-order-app/internal/model"
)

// MismatchError сообщает о расхождении между стоимостью, присланной клиентом,
// и стоимостью, пересчитанной сервером.
type MismatchError struct {
	RecomputedSubtotal int
	RecomputedTotal    int
	ReceivedSubtotal   int
	ReceivedTotal      int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("totals mismatch: recomputed subtotal=%d total=%d, received subtotal=%d total=%d",
		e.RecomputedSubtotal, e.RecomputedTotal, e.ReceivedSubtotal, e.ReceivedTotal)
}

// Verify пересчитывает подытог и итог заказа по коду товара и количеству.
// Клиент считает стоимость у себя в форме, поэтому присланные суммы
// принимаются только при точном совпадении с серверным расчётом.
func Verify(o *model.Order) error {
	subtotal := o.ProductCode.UnitPrice() * o.Quantity
	total := subtotal + o.ShippingCost

	if subtotal != o.ItemSubtotal || total != o.OrderTotal {
		return &MismatchError{
			RecomputedSubtotal: subtotal,
			RecomputedTotal:    total,
			ReceivedSubtotal:   o.ItemSubtotal,
			ReceivedTotal:      o.OrderTotal,
		}
	}

	return nil
}
