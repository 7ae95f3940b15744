// Package service реализует бизнес-логику сервиса заказов Sentir.
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/josiasngenda250/sentir-order-app/internal/email"
	"github.com/josiasngenda250/sentir-order-app/internal/model"
	"github.com/josiasngenda250/sentir-order-app/internal/pricing"
	"github.com/josiasngenda250/sentir-order-app/internal/validation"
)

// ErrNoRecipient возвращается, когда проверочному письму некому уйти:
// адрес не указан, а список администраторов пуст.
var ErrNoRecipient = errors.New("no recipient: 'to' missing and ADMIN_EMAILS empty")

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	InsertOrder(ctx context.Context, o *model.Order) (string, time.Time, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// Sender описывает контракт отправки писем.
type Sender interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// Service содержит бизнес-логику сервиса заказов Sentir.
type Service struct {
	repo        Repository
	sender      Sender
	adminEmails []string
}

// NewService создаёт новый сервис с указанным репозиторием, отправителем писем
// и списком адресов администраторов.
func NewService(repo Repository, sender Sender, adminEmails []string) *Service {
	return &Service{
		repo:        repo,
		sender:      sender,
		adminEmails: adminEmails,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// PlacementResult описывает результат размещения заказа. Ошибки отправки
// писем информационные: заказ к этому моменту уже сохранён.
type PlacementResult struct {
	ID                 string
	CreatedAt          time.Time
	CustomerEmailError string
	AdminEmailError    string
}

// PlaceOrder проверяет заявку, пересчитывает стоимость, сохраняет заказ и
// отправляет два независимых уведомления. До успешного сохранения никаких
// побочных эффектов не происходит.
func (s *Service) PlaceOrder(ctx context.Context, sub *validation.Submission) (*PlacementResult, error) {
	order, err := validation.Validate(sub)
	if err != nil {
		return nil, err
	}

	if err := pricing.Verify(order); err != nil {
		return nil, err
	}

	id, createdAt, err := s.repo.InsertOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.CreatedAt = createdAt

	res := &PlacementResult{ID: id, CreatedAt: createdAt}

	// Две отправки независимы: сбой одной не мешает другой
	// и не отменяет уже сохранённый заказ.
	subject, html := email.CustomerMessage(order)
	if err := s.sender.Send(ctx, []string{order.Email}, subject, html); err != nil {
		res.CustomerEmailError = err.Error()
	}

	// Пустой список администраторов не блокирует размещение заказа.
	if len(s.adminEmails) > 0 {
		subject, html := email.AdminMessage(order)
		if err := s.sender.Send(ctx, s.adminEmails, subject, html); err != nil {
			res.AdminEmailError = err.Error()
		}
	}

	return res, nil
}

// csvColumns задаёт фиксированный порядок колонок выгрузки.
var csvColumns = []string{
	"id", "created_at", "full_name", "email", "phone", "preferred_contact",
	"addr1", "addr2", "city", "province", "postal", "country",
	"product", "product_code", "quantity", "shipping_option", "shipping_cost",
	"item_subtotal", "order_total", "payment_method", "requests",
}

// ExportCSV выгружает все заказы в формате CSV, новые первыми.
// Отсутствующие значения выводятся пустой строкой.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range orders {
		if err := cw.Write(csvRecord(&orders[i])); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(o *model.Order) []string {
	return []string{
		o.ID,
		o.CreatedAt.Format(time.RFC3339),
		o.FullName,
		o.Email,
		optional(o.Phone),
		optional(o.PreferredContact),
		o.Addr1,
		optional(o.Addr2),
		o.City,
		o.Province,
		o.Postal,
		o.Country,
		o.Product,
		string(o.ProductCode),
		strconv.Itoa(o.Quantity),
		o.ShippingOption,
		strconv.Itoa(o.ShippingCost),
		strconv.Itoa(o.ItemSubtotal),
		strconv.Itoa(o.OrderTotal),
		string(o.PaymentMethod),
		optional(o.Requests),
	}
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SendTestEmail отправляет проверочное письмо указанному получателю либо
// первому адресу из списка администраторов.
func (s *Service) SendTestEmail(ctx context.Context, to string) error {
	if to == "" {
		if len(s.adminEmails) == 0 {
			return ErrNoRecipient
		}
		to = s.adminEmails[0]
	}

	subject, html := email.TestMessage()
	return s.sender.Send(ctx, []string{to}, subject, html)
}
