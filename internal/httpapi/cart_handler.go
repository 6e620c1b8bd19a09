package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/gomarketplace-cart/internal/cart"
	"github.com/nikolayk812/gomarketplace-cart/internal/domain"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"image_url"`
	Price    decimal.Decimal `json:"price"`
}

type itemResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"image_url"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type cartResponse struct {
	Products []itemResponse `json:"products"`
	Count    int            `json:"count"`
	Total    string         `json:"total"`
	Currency string         `json:"currency"`
}

type cartHandler struct{}

func (h cartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}

	writeCart(w, store)
}

// AddItem accepts any product that decodes; the payload is not validated.
func (h cartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}

	var body productRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	store.AddToCart(domain.Product{
		ID:       body.ID,
		Title:    body.Title,
		ImageURL: body.ImageURL,
		Price:    body.Price,
	})

	writeCart(w, store)
}

func (h cartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}

	store.Increment(chi.URLParam(r, "id"))
	writeCart(w, store)
}

func (h cartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}

	store.Decrement(chi.URLParam(r, "id"))
	writeCart(w, store)
}

func storeFrom(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	store, err := cart.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return store, true
}

func writeCart(w http.ResponseWriter, store *cart.Store) {
	items := store.Products()
	summary := store.Summary()

	resp := cartResponse{
		Products: make([]itemResponse, 0, len(items)),
		Count:    summary.Count,
		Total:    summary.Total.Amount.StringFixed(2),
		Currency: summary.Total.Currency.String(),
	}
	for _, item := range items {
		resp.Products = append(resp.Products, itemResponse{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
