package handler

import (
	"net/http"

	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/multiplayer"
	"github.com/willowbyte/gardenbloom/internal/slot"
)

// SocialHandler serves friends, chat, and garden visit endpoints backed
// by the multiplayer sync client.
type SocialHandler struct {
	client *multiplayer.Client
	mgr    *slot.Manager
}

// NewSocialHandler creates a social handler. A nil client means the
// application runs in single-player mode.
func NewSocialHandler(client *multiplayer.Client, mgr *slot.Manager) *SocialHandler {
	return &SocialHandler{client: client, mgr: mgr}
}

// online checks that multiplayer is configured, writing 503 otherwise.
func (h *SocialHandler) online(w http.ResponseWriter) bool {
	if h.client == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgMultiplayerDisabled)
		return false
	}
	return true
}

// SyncStatusResponse reports the sync connection state.
type SyncStatusResponse struct {
	State     string `json:"state"`
	Connected bool   `json:"connected"`
}

// HandleSyncStatus returns the sync client's connection state.
func (h *SocialHandler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		respondJSON(w, http.StatusOK, DataResponse{Data: SyncStatusResponse{
			State: "disabled",
		}})
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: SyncStatusResponse{
		State:     string(h.client.State()),
		Connected: h.client.IsConnected(),
	}})
}

// HandleFriends returns the friend list with presence.
func (h *SocialHandler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: h.client.Friends()})
}

// FriendRequestBody names the user to befriend.
type FriendRequestBody struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

// HandleSendFriendRequest asks the server to forward a friend request.
func (h *SocialHandler) HandleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req FriendRequestBody
	if err := DecodeAndValidateRequest(r, w, &req, "Send friend request"); err != nil {
		return
	}

	if err := h.client.SendFriendRequest(req.Username); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgFriendOpFailed, "username", req.Username, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgFriendRequested})
}

// RespondFriendBody answers a pending friend request.
type RespondFriendBody struct {
	PeerID   string `json:"peer_id" validate:"required"`
	Accepted bool   `json:"accepted"`
}

// HandleRespondFriendRequest accepts or declines a pending request.
func (h *SocialHandler) HandleRespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req RespondFriendBody
	if err := DecodeAndValidateRequest(r, w, &req, "Respond to friend request"); err != nil {
		return
	}

	if err := h.client.RespondFriendRequest(req.PeerID, req.Accepted); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgFriendOpFailed, "peer", req.PeerID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendResponded})
}

// UnfriendBody names the peer to remove.
type UnfriendBody struct {
	PeerID string `json:"peer_id" validate:"required"`
}

// HandleUnfriend removes a friend on both sides.
func (h *SocialHandler) HandleUnfriend(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req UnfriendBody
	if err := DecodeAndValidateRequest(r, w, &req, "Unfriend"); err != nil {
		return
	}

	if err := h.client.Unfriend(req.PeerID); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgFriendOpFailed, "peer", req.PeerID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgUnfriended})
}

// HandleChatHistory returns the rolling chat buffer.
func (h *SocialHandler) HandleChatHistory(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: h.client.ChatHistory()})
}

// SendMessageBody is one outbound chat message.
type SendMessageBody struct {
	Text       string `json:"text" validate:"required,min=1,max=500"`
	ReceiverID string `json:"receiver_id,omitempty"`
}

// HandleSendMessage sends a chat message to a friend or the global channel.
func (h *SocialHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req SendMessageBody
	if err := DecodeAndValidateRequest(r, w, &req, "Send message"); err != nil {
		return
	}

	if err := h.client.SendMessage(req.Text, req.ReceiverID); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgChatFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgMessageSent})
}

// VisitBody names the peer whose garden to visit.
type VisitBody struct {
	PeerID string `json:"peer_id" validate:"required"`
}

// HandleRequestVisit asks a friend for a look at their garden.
func (h *SocialHandler) HandleRequestVisit(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req VisitBody
	if err := DecodeAndValidateRequest(r, w, &req, "Request garden visit"); err != nil {
		return
	}

	if err := h.client.RequestVisit(req.PeerID); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgVisitFailed, "peer", req.PeerID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgVisitRequested})
}

// RespondVisitBody answers an incoming visit request.
type RespondVisitBody struct {
	PeerID  string `json:"peer_id" validate:"required"`
	Allowed bool   `json:"allowed"`
}

// HandleRespondVisit grants or denies a pending visit request. A grant
// ships the active slot's current snapshot.
func (h *SocialHandler) HandleRespondVisit(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	var req RespondVisitBody
	if err := DecodeAndValidateRequest(r, w, &req, "Respond to garden visit"); err != nil {
		return
	}

	if req.Allowed {
		sess := h.mgr.Active()
		if sess == nil {
			respondError(w, http.StatusConflict, ErrMsgNoActiveSlotError)
			return
		}
		snap := sess.Snapshot()
		if err := h.client.RespondVisit(req.PeerID, true, &snap); err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgVisitFailed, "peer", req.PeerID, "error", err)
			respondServiceError(w, err)
			return
		}
	} else if err := h.client.RespondVisit(req.PeerID, false, nil); err != nil {
		logger.FromContext(r.Context()).Warn(ErrMsgVisitFailed, "peer", req.PeerID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgVisitResponded})
}

// HandlePeerGarden returns a cached peer garden snapshot.
func (h *SocialHandler) HandlePeerGarden(w http.ResponseWriter, r *http.Request) {
	if !h.online(w) {
		return
	}
	peerID, ok := GetQueryParam(r, w, "peer_id")
	if !ok {
		return
	}

	snap, err := h.client.PeerGarden(peerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: snap})
}
