package api

import (
	"net/http"

	"github.com/petdesk/petdesk/internal/api/shared"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/service"
)

// ShopHandler handles shop, currency and inventory API requests.
type ShopHandler struct {
	shop      *service.ShopService
	inventory *service.InventoryService
	growth    *service.GrowthService
}

// NewShopHandler creates a new ShopHandler with the given dependencies.
func NewShopHandler(shop *service.ShopService, inventory *service.InventoryService, growth *service.GrowthService) *ShopHandler {
	return &ShopHandler{
		shop:      shop,
		inventory: inventory,
		growth:    growth,
	}
}

// GetCatalog handles GET /shop/catalog.
func (h *ShopHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.shop.Catalog())
}

// GetBalance handles GET /balance.
func (h *ShopHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.shop.Balance(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{Balance: balance})
}

// Purchase handles POST /shop/purchase.
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	balance, err := h.shop.Purchase(r.Context(), req.ItemID, req.Quantity)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{Balance: balance})
}

// PurchasePet handles POST /shop/pets.
func (h *ShopHandler) PurchasePet(w http.ResponseWriter, r *http.Request) {
	var req AdoptPetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	pet, err := h.shop.PurchasePet(r.Context(), domain.Species(req.Species), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// EarnCredits handles POST /credits.
func (h *ShopHandler) EarnCredits(w http.ResponseWriter, r *http.Request) {
	var req CreditRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	balance, err := h.shop.EarnCredits(r.Context(), req.Source)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{Balance: balance})
}

// ActivateCharm handles POST /shop/charm.
func (h *ShopHandler) ActivateCharm(w http.ResponseWriter, r *http.Request) {
	var req ActivateCharmRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.shop.ActivateCharm(r.Context(), req.ItemID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetInventory handles GET /inventory.
func (h *ShopHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	stacks, err := h.inventory.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]InventoryItemResponse, 0, len(stacks))
	for _, stack := range stacks {
		out = append(out, InventoryItemResponse{ItemID: stack.ItemID, Quantity: stack.Quantity})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
