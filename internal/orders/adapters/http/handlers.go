package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mpavic/hexorders/internal/orders/app"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderByID)
	mux.HandleFunc("/v1/orders/stats", h.handleStats)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.placeOrder(w, r)
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/orders/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if id == "stats" {
		h.handleStats(w, r)
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.getOrder(w, r, id)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		stored, err := h.service.GetIdempotentResponse(ctx, idemKey)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload app.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	orderID, err := h.service.PlaceOrder(ctx, payload)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	body, err := json.Marshal(map[string]any{"order_id": orderID.String()})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if idemKey != "" {
		stored := ports.StoredResponse{
			StatusCode: http.StatusCreated,
			Body:       body,
			OrderID:    orderID.String(),
		}
		if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": toOrderResponse(order)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	count, err := h.service.OrderCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order_count": count})
}

type itemResponse struct {
	SKU       string `json:"sku"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type orderResponse struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Total  string         `json:"total"`
	Items  []itemResponse `json:"items"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	items := make([]itemResponse, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, itemResponse{
			SKU:       item.SKU(),
			UnitPrice: item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal().String(),
		})
	}

	return orderResponse{
		ID:     order.ID().String(),
		Status: string(order.Status()),
		Total:  order.Total().String(),
		Items:  items,
	}
}

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidOrder, domain.CodeInvalidState, domain.CodeDomainViolation:
		return http.StatusBadRequest
	case domain.CodeInsufficientStock:
		return http.StatusConflict
	case domain.CodeOrderPlacementFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	orderErr, ok := domain.AsOrderError(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := map[string]any{
		"code":    string(orderErr.Code),
		"message": orderErr.Message,
	}
	if len(orderErr.UnavailableSKUs) > 0 {
		body["unavailable_skus"] = orderErr.UnavailableSKUs
	}
	if orderErr.CurrentState != "" {
		body["current_state"] = string(orderErr.CurrentState)
		body["target_state"] = string(orderErr.TargetState)
	}

	writeJSON(w, statusForCode(orderErr.Code), map[string]any{"error": body})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": map[string]any{"message": message}})
}
