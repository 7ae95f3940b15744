// Package repository содержит реализацию доступа к данным в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/josiasngenda250/sentir-order-app/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrStoreUnavailable возвращается, когда хранилище недоступно на уровне соединения.
var ErrStoreUnavailable = errors.New("store unavailable")

// PostgresRepository предоставляет доступ к хранилищу заказов в PostgreSQL.
// Хранилище для сервиса append-only: заказы не обновляются и не удаляются.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД
// через миграции. Миграции идемпотентны: повторный запуск не меняет схему.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, classify(fmt.Errorf("ping database: %w", err))
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// InsertOrder сохраняет проверенный заказ одной строкой и возвращает
// сгенерированный идентификатор и время создания.
func (r *PostgresRepository) InsertOrder(ctx context.Context, o *model.Order) (string, time.Time, error) {
	var (
		id        string
		createdAt time.Time
	)

	err := r.pool.QueryRow(ctx,
		`INSERT INTO sentir_orders
		 (full_name, email, phone, preferred_contact, addr1, addr2, city, province, postal, country,
		  product, product_code, quantity, shipping_option, shipping_cost, item_subtotal, order_total,
		  payment_method, requests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING id, created_at`,
		o.FullName, o.Email, o.Phone, o.PreferredContact, o.Addr1, o.Addr2,
		o.City, o.Province, o.Postal, o.Country,
		o.Product, string(o.ProductCode), o.Quantity, o.ShippingOption,
		o.ShippingCost, o.ItemSubtotal, o.OrderTotal,
		string(o.PaymentMethod), o.Requests,
	).Scan(&id, &createdAt)
	if err != nil {
		return "", time.Time{}, classify(fmt.Errorf("insert order: %w", err))
	}

	return id, createdAt, nil
}

// ListOrders возвращает все заказы, новые первыми.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, created_at, full_name, email, phone, preferred_contact,
		        addr1, addr2, city, province, postal, country,
		        product, product_code, quantity, shipping_option,
		        shipping_cost, item_subtotal, order_total, payment_method, requests
		 FROM sentir_orders
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("select orders: %w", err))
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var (
			o           model.Order
			productCode string
			payment     string
		)
		if err := rows.Scan(
			&o.ID, &o.CreatedAt, &o.FullName, &o.Email, &o.Phone, &o.PreferredContact,
			&o.Addr1, &o.Addr2, &o.City, &o.Province, &o.Postal, &o.Country,
			&o.Product, &productCode, &o.Quantity, &o.ShippingOption,
			&o.ShippingCost, &o.ItemSubtotal, &o.OrderTotal, &payment, &o.Requests,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		o.ProductCode = model.ProductCode(productCode)
		o.PaymentMethod = model.PaymentMethod(payment)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// classify помечает ошибки уровня соединения как ErrStoreUnavailable,
// чтобы вызывающий код мог отличить недоступность хранилища от прочих сбоев.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsConnectionException(pgErr.Code) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return err
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}
