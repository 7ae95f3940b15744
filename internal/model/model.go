// Package model содержит доменные сущности сервиса заказов Sentir.
package model

import "time"

// ProductCode задаёт код товара из закрытого перечня магазина.
type ProductCode string

const (
	ProductLatte            ProductCode = "LATTE"
	ProductStrawberryMatcha ProductCode = "STRAWBERRY_MATCHA"
	ProductMango            ProductCode = "MANGO"
	ProductTrio             ProductCode = "TRIO"
)

// Valid сообщает, входит ли код товара в перечень.
func (c ProductCode) Valid() bool {
	switch c {
	case ProductLatte, ProductStrawberryMatcha, ProductMango, ProductTrio:
		return true
	}
	return false
}

// UnitPrice возвращает цену за единицу товара в целых долларах CAD.
func (c ProductCode) UnitPrice() int {
	switch c {
	case ProductTrio:
		return 77
	case ProductLatte, ProductStrawberryMatcha, ProductMango:
		return 30
	}
	return 0
}

// Label возвращает отображаемое название товара.
func (c ProductCode) Label() string {
	switch c {
	case ProductLatte:
		return "Latte"
	case ProductStrawberryMatcha:
		return "Strawberry Matcha"
	case ProductMango:
		return "Mango"
	case ProductTrio:
		return "Trio Bundle"
	}
	return string(c)
}

// PaymentMethod задаёт способ оплаты из закрытого перечня.
type PaymentMethod string

const (
	PaymentETransfer PaymentMethod = "etransfer"
	PaymentPayPal    PaymentMethod = "paypal"
)

// Valid сообщает, входит ли способ оплаты в перечень.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentETransfer, PaymentPayPal:
		return true
	}
	return false
}

// Label возвращает отображаемое название способа оплаты.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentETransfer:
		return "Interac e-transfer"
	case PaymentPayPal:
		return "PayPal"
	}
	return string(m)
}

// Order описывает принятый заказ покупателя. Заказ создаётся один раз
// и после сохранения не изменяется.
type Order struct {
	ID               string
	CreatedAt        time.Time
	FullName         string
	Email            string
	Phone            *string
	PreferredContact *string
	Addr1            string
	Addr2            *string
	City             string
	Province         string
	Postal           string
	Country          string
	Product          string
	ProductCode      ProductCode
	Quantity         int
	ShippingOption   string
	ShippingCost     int
	ItemSubtotal     int
	OrderTotal       int
	PaymentMethod    PaymentMethod
	Requests         *string
}
