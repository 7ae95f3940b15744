// Package validation выполняет проверку и нормализацию заявки на заказ.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/josiasngenda250/sentir-order-app/internal/model"
)

// Submission — необработанная заявка на заказ в том виде, в каком её
// присылает форма. Числовые поля принимают как число, так и числовую строку.
type Submission struct {
	FullName         string  `json:"fullName"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	PreferredContact *string `json:"preferredContact"`
	Addr1            string  `json:"addr1"`
	Addr2            *string `json:"addr2"`
	City             string  `json:"city"`
	Province         string  `json:"province"`
	Postal           string  `json:"postal"`
	Country          string  `json:"country"`
	Product          string  `json:"product"`
	ProductCode      string  `json:"productCode"`
	Quantity         any     `json:"quantity"`
	ShippingOption   string  `json:"shippingOption"`
	ShippingCost     any     `json:"shippingCost"`
	ItemSubtotal     any     `json:"itemSubtotal"`
	OrderTotal       any     `json:"orderTotal"`
	PaymentMethod    string  `json:"paymentMethod"`
	Requests         *string `json:"requests"`
}

// Причины отклонения отдельного поля заявки.
const (
	ReasonRequired      = "required"
	ReasonInvalidEmail  = "invalid_email"
	ReasonInvalidEnum   = "invalid_enum"
	ReasonInvalidNumber = "invalid_number"
	ReasonOutOfRange    = "out_of_range"
)

// FieldError описывает нарушение ограничения для одного поля заявки.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError агрегирует все нарушения заявки. Заявка принимается
// только целиком: одно нарушение отклоняет её полностью.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate проверяет заявку целиком и возвращает типизированный заказ.
// При любом нарушении возвращается *ValidationError со списком полей.
func Validate(sub *Submission) (*model.Order, error) {
	verr := &ValidationError{}

	required := []struct {
		name  string
		value string
	}{
		{"fullName", sub.FullName},
		{"email", sub.Email},
		{"addr1", sub.Addr1},
		{"city", sub.City},
		{"province", sub.Province},
		{"postal", sub.Postal},
		{"country", sub.Country},
		{"product", sub.Product},
		{"shippingOption", sub.ShippingOption},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			verr.add(f.name, ReasonRequired)
		}
	}

	if email := strings.TrimSpace(sub.Email); email != "" && !emailRe.MatchString(email) {
		verr.add("email", ReasonInvalidEmail)
	}

	code := model.ProductCode(sub.ProductCode)
	if !code.Valid() {
		verr.add("productCode", ReasonInvalidEnum)
	}

	method := model.PaymentMethod(sub.PaymentMethod)
	if !method.Valid() {
		verr.add("paymentMethod", ReasonInvalidEnum)
	}

	quantity := intField(verr, "quantity", sub.Quantity, 1)
	shippingCost := intField(verr, "shippingCost", sub.ShippingCost, 0)
	itemSubtotal := intField(verr, "itemSubtotal", sub.ItemSubtotal, 0)
	orderTotal := intField(verr, "orderTotal", sub.OrderTotal, 1)

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	return &model.Order{
		FullName:         strings.TrimSpace(sub.FullName),
		Email:            strings.TrimSpace(sub.Email),
		Phone:            optionalText(sub.Phone),
		PreferredContact: optionalText(sub.PreferredContact),
		Addr1:            strings.TrimSpace(sub.Addr1),
		Addr2:            optionalText(sub.Addr2),
		City:             strings.TrimSpace(sub.City),
		Province:         strings.TrimSpace(sub.Province),
		Postal:           strings.TrimSpace(sub.Postal),
		Country:          strings.TrimSpace(sub.Country),
		Product:          strings.TrimSpace(sub.Product),
		ProductCode:      code,
		Quantity:         quantity,
		ShippingOption:   strings.TrimSpace(sub.ShippingOption),
		ShippingCost:     shippingCost,
		ItemSubtotal:     itemSubtotal,
		OrderTotal:       orderTotal,
		PaymentMethod:    method,
		Requests:         optionalText(sub.Requests),
	}, nil
}

// intField извлекает целое значение с нижней границей min,
// добавляя нарушение в verr при любой проблеме.
func intField(verr *ValidationError, name string, v any, min int) int {
	if v == nil {
		verr.add(name, ReasonRequired)
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		verr.add(name, ReasonInvalidNumber)
		return 0
	}
	if n < min {
		verr.add(name, ReasonOutOfRange)
		return 0
	}
	return n
}

// toInt принимает числовое или строково-числовое представление и возвращает
// целое. Нечисловые, нецелые и неконечные значения отклоняются.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
