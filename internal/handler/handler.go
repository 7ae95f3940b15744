// Package handler содержит HTTP-обработчики API сервиса заказов Sentir.
package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/josiasngenda250/sentir-order-app/internal/config"
	"github.com/josiasngenda250/sentir-order-app/internal/pricing"
	"github.com/josiasngenda250/sentir-order-app/internal/service"
	"github.com/josiasngenda250/sentir-order-app/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	PlaceOrder(ctx context.Context, sub *validation.Submission) (*service.PlacementResult, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	SendTestEmail(ctx context.Context, to string) error
}

// Handler реализует HTTP-обработчики API сервиса заказов Sentir.
type Handler struct {
	service Service
	logger  *zap.Logger
	cfg     *config.Config
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		cfg:     cfg,
	}
}

type placeOrderResponse struct {
	OK                 bool   `json:"ok"`
	ID                 string `json:"id"`
	CreatedAt          string `json:"createdAt"`
	CustomerEmailError string `json:"customerEmailError,omitempty"`
	AdminEmailError    string `json:"adminEmailError,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// PlaceOrder принимает заявку на заказ, проверяет её и размещает заказ.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var sub validation.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	res, err := h.service.PlaceOrder(r.Context(), &sub)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "validation failed",
				Details: verr.Fields,
			})
			return
		}

		var merr *pricing.MismatchError
		if errors.As(err, &merr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "Totals mismatch",
				Details: map[string]any{
					"recomputedSubtotal": merr.RecomputedSubtotal,
					"recomputedTotal":    merr.RecomputedTotal,
					"received": map[string]int{
						"itemSubtotal": merr.ReceivedSubtotal,
						"orderTotal":   merr.ReceivedTotal,
					},
				},
			})
			return
		}

		h.logger.Error("place order error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "server error"})
		return
	}

	writeJSON(w, http.StatusOK, placeOrderResponse{
		OK:                 true,
		ID:                 res.ID,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		CustomerEmailError: res.CustomerEmailError,
		AdminEmailError:    res.AdminEmailError,
	})
}

// Export отдаёт все заказы в формате CSV после проверки общего секрета.
// Секрет принимается из заголовка X-Export-Secret или параметра secret.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	expected := h.cfg.ExportSecret
	if expected == "" {
		// Без настроенного секрета выгрузка закрыта полностью.
		http.Error(w, "server not configured (missing EXPORT_SECRET)", http.StatusInternalServerError)
		return
	}

	provided := strings.TrimSpace(r.Header.Get("X-Export-Secret"))
	if provided == "" {
		provided = strings.TrimSpace(r.URL.Query().Get("secret"))
	}

	if provided == "" || !secureEqual(provided, expected) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf); err != nil {
		h.logger.Error("export error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sentir_orders.csv"`)
	w.Header().Set("Cache-Control", "no-store")

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("write export response", zap.Error(err))
	}
}

// secureEqual сравнивает секреты за постоянное время.
func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Diagnostics сообщает о наличии обязательных настроек, не раскрывая значений.
func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg.Diagnostics())
}

// TestEmail отправляет проверочное письмо для диагностики интеграции с рассылкой.
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	to := strings.TrimSpace(r.URL.Query().Get("to"))

	if err := h.service.SendTestEmail(r.Context(), to); err != nil {
		if errors.Is(err, service.ErrNoRecipient) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("test email error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
