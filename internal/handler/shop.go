package handler

import (
	"net/http"

	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/domain"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/slot"
)

// ShopHandler serves shop stock, catalog browsing, and purchases.
type ShopHandler struct {
	mgr *slot.Manager
	cat *catalog.Catalog
}

// NewShopHandler creates a shop handler.
func NewShopHandler(mgr *slot.Manager, cat *catalog.Catalog) *ShopHandler {
	return &ShopHandler{mgr: mgr, cat: cat}
}

// ShopView pairs the current stock with the slot's resources.
type ShopView struct {
	Shop      map[string]*domain.ShopEntry     `json:"shop"`
	Resources domain.Resources                 `json:"resources"`
	Tools     map[domain.ToolKind]*domain.Tool `json:"tools"`
}

// HandleView returns the active slot's shop stock.
func (h *ShopHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return
	}

	state, err := sess.StateCopy()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to snapshot shop state", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: ShopView{
		Shop:      state.Shop,
		Resources: state.Resources,
		Tools:     state.Tools,
	}})
}

// CatalogView lists everything purchasable, independent of stock.
type CatalogView struct {
	Plants      []domain.PlantType      `json:"plants"`
	Sprinklers  []domain.SprinklerType  `json:"sprinklers"`
	Decorations []domain.DecorationType `json:"decorations"`
}

// HandleCatalog returns the full item catalog.
func (h *ShopHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: CatalogView{
		Plants:      h.cat.Plants(),
		Sprinklers:  h.cat.Sprinklers(),
		Decorations: h.cat.Decorations(),
	}})
}

// HandleBuyWater buys one unit of water.
func (h *ShopHandler) HandleBuyWater(w http.ResponseWriter, r *http.Request) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return
	}

	if err := sess.BuyWater(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgPurchaseFailed, "item", "water", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPurchased})
}

// HandleBuyFertilizer buys one unit of fertilizer.
func (h *ShopHandler) HandleBuyFertilizer(w http.ResponseWriter, r *http.Request) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return
	}

	if err := sess.BuyFertilizer(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgPurchaseFailed, "item", "fertilizer", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPurchased})
}

// UpgradeToolRequest names the tool to upgrade.
type UpgradeToolRequest struct {
	Tool string `json:"tool" validate:"required,toolkind"`
}

// HandleUpgradeTool raises a tool one level.
func (h *ShopHandler) HandleUpgradeTool(w http.ResponseWriter, r *http.Request) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return
	}

	var req UpgradeToolRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Upgrade tool"); err != nil {
		return
	}

	if err := sess.UpgradeTool(r.Context(), domain.ToolKind(req.Tool)); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgUpgradeFailed, "tool", req.Tool, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgToolUpgraded})
}
