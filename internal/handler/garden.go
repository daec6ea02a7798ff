package handler

import (
	"net/http"

	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/session"
	"github.com/willowbyte/gardenbloom/internal/slot"
)

// GardenHandler serves the garden action endpoints for the active slot.
type GardenHandler struct {
	mgr *slot.Manager
}

// NewGardenHandler creates a garden handler.
func NewGardenHandler(mgr *slot.Manager) *GardenHandler {
	return &GardenHandler{mgr: mgr}
}

// activeSession resolves the running session or writes the error response.
func (h *GardenHandler) activeSession(w http.ResponseWriter) (*session.Session, bool) {
	sess := h.mgr.Active()
	if sess == nil {
		respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
		return nil, false
	}
	return sess, true
}

// HandleView returns the active slot's full garden state.
func (h *GardenHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	state, err := sess.StateCopy()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to snapshot garden state", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: state})
}

// CellRequest addresses one grid cell.
type CellRequest struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

// PlantRequest plants a seed at a cell.
type PlantRequest struct {
	Row  int    `json:"row" validate:"gte=0"`
	Col  int    `json:"col" validate:"gte=0"`
	Seed string `json:"seed" validate:"required"`
}

// HandlePlant plants a seed.
func (h *GardenHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant seed"); err != nil {
		return
	}

	if err := sess.PlantSeed(r.Context(), req.Row, req.Col, req.Seed); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgPlantFailed, "seed", req.Seed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlanted})
}

// HandleWater opens a watering window at a cell.
func (h *GardenHandler) HandleWater(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Water"); err != nil {
		return
	}

	if err := sess.Water(r.Context(), req.Row, req.Col); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgWaterFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWatered})
}

// HandleFertilize opens a fertilizing window at a cell.
func (h *GardenHandler) HandleFertilize(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Fertilize"); err != nil {
		return
	}

	if err := sess.Fertilize(r.Context(), req.Row, req.Col); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgFertilizeFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFertilized})
}

// HarvestResponse reports the proceeds of a harvest.
type HarvestResponse struct {
	Seed       string `json:"seed"`
	Stage      int    `json:"stage"`
	FullyGrown bool   `json:"fully_grown"`
	Value      int    `json:"value"`
}

// HandleHarvest collects the plant at a cell.
func (h *GardenHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	res, err := sess.Harvest(r.Context(), req.Row, req.Col)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgHarvestFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: HarvestResponse{
		Seed:       res.Seed.Name,
		Stage:      res.Stage,
		FullyGrown: res.FullyGrown,
		Value:      res.Value,
	}})
}

// ShovelResponse reports a dug-up cell and any seed-cost refund.
type ShovelResponse struct {
	Refund int `json:"refund"`
}

// HandleShovel digs up the plant at a cell.
func (h *GardenHandler) HandleShovel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Shovel"); err != nil {
		return
	}

	refund, err := sess.Shovel(r.Context(), req.Row, req.Col)
	if err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgShovelFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: ShovelResponse{Refund: refund}})
}

// HandleExpand grows the garden grid.
func (h *GardenHandler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	if err := sess.Expand(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgExpandFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgExpanded})
}

// SprinklerRequest addresses a sprinkler action.
type SprinklerRequest struct {
	Row  int    `json:"row" validate:"gte=0"`
	Col  int    `json:"col" validate:"gte=0"`
	Type string `json:"type,omitempty"`
}

// HandleBuySprinkler purchases a sprinkler into the inventory.
func (h *GardenHandler) HandleBuySprinkler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req SprinklerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy sprinkler"); err != nil {
		return
	}

	if err := sess.BuySprinkler(r.Context(), req.Type); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgSprinklerFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSprinklerBought})
}

// HandlePlaceSprinkler places an inventory sprinkler.
func (h *GardenHandler) HandlePlaceSprinkler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req SprinklerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place sprinkler"); err != nil {
		return
	}

	if err := sess.PlaceSprinkler(r.Context(), req.Row, req.Col, req.Type); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgSprinklerFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSprinklerPlaced})
}

// HandlePickUpSprinkler returns a placed sprinkler to the inventory.
func (h *GardenHandler) HandlePickUpSprinkler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Pick up sprinkler"); err != nil {
		return
	}

	if err := sess.PickUpSprinkler(r.Context(), req.Row, req.Col); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgSprinklerFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSprinklerTaken})
}

// DecorationRequest addresses a decoration action.
type DecorationRequest struct {
	Row  int    `json:"row" validate:"gte=0"`
	Col  int    `json:"col" validate:"gte=0"`
	Type string `json:"type,omitempty"`
}

// HandlePlaceDecoration places a decoration.
func (h *GardenHandler) HandlePlaceDecoration(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req DecorationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place decoration"); err != nil {
		return
	}

	if err := sess.PlaceDecoration(r.Context(), req.Row, req.Col, req.Type); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgDecoFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDecoPlaced})
}

// HandleRemoveDecoration removes a decoration. No refund.
func (h *GardenHandler) HandleRemoveDecoration(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.activeSession(w)
	if !ok {
		return
	}

	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove decoration"); err != nil {
		return
	}

	if err := sess.RemoveDecoration(r.Context(), req.Row, req.Col); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgDecoFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDecoRemoved})
}
