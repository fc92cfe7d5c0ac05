// Package transport exposes the explorer over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// Handler serves the JSON API.
type Handler struct {
	explorer Explorer
	logger   *zap.Logger
}

func NewHandler(explorer Explorer, logger *zap.Logger) (*Handler, error) {
	if explorer == nil {
		return nil, errors.New("handler explorer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{explorer: explorer, logger: logger.Named("http")}, nil
}

// Register mounts the API routes on router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/networks", h.listNetworks).Methods(http.MethodGet)
	v1.HandleFunc("/networks/{network}", h.upsertNetwork).Methods(http.MethodPut)
	v1.HandleFunc("/networks/{network}", h.deleteNetwork).Methods(http.MethodDelete)
	v1.HandleFunc("/networks/{network}/checkpoint", h.getCheckpoint).Methods(http.MethodGet)
	v1.HandleFunc("/networks/{network}/status", h.getStatus).Methods(http.MethodGet)

	v1.HandleFunc("/entities", h.createEntity).Methods(http.MethodPost)
	v1.HandleFunc("/entities", h.listEntities).Methods(http.MethodGet)
	v1.HandleFunc("/tags", h.createTag).Methods(http.MethodPost)
	v1.HandleFunc("/tags", h.listTags).Methods(http.MethodGet)
	v1.HandleFunc("/entities/{entity}/tags/{tag}", h.attachTag).Methods(http.MethodPut)
	v1.HandleFunc("/entities/{entity}/tags/{tag}", h.detachTag).Methods(http.MethodDelete)
	v1.HandleFunc("/addresses/{network}/{address}", h.upsertAddress).Methods(http.MethodPut)

	v1.HandleFunc("/info", h.info).Methods(http.MethodGet)
	v1.HandleFunc("/upstream", h.upstream).Methods(http.MethodGet)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listNetworks(w http.ResponseWriter, r *http.Request) {
	networks, err := h.explorer.ListNetworks(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	out := make([]networkDTO, 0, len(networks))
	for _, n := range networks {
		out = append(out, networkFromModel(n))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) upsertNetwork(w http.ResponseWriter, r *http.Request) {
	var body networkDTO
	if !h.decode(w, r, &body) {
		return
	}
	n := body.toModel()
	n.ID = mux.Vars(r)["network"]
	if err := n.Validate(); err != nil {
		h.respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.explorer.UpsertNetwork(r.Context(), n); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, networkFromModel(n))
}

func (h *Handler) deleteNetwork(w http.ResponseWriter, r *http.Request) {
	if err := h.explorer.DeleteNetwork(r.Context(), mux.Vars(r)["network"]); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCheckpoint(w http.ResponseWriter, r *http.Request) {
	cp, err := h.explorer.GetCheckpoint(r.Context(), mux.Vars(r)["network"])
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, checkpointDTO{
		Network:      cp.Network,
		Height:       cp.Height,
		Generation:   cp.Generation,
		RollbackFrom: cp.RollbackFrom,
		UpdatedAt:    cp.UpdatedAt,
	})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.explorer.GetStatus(r.Context(), mux.Vars(r)["network"])
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, statusDTO{
		Network:        st.Network,
		LeaderInstance: st.Leader,
		Height:         st.Height,
		TipHeight:      st.TipHeight,
		Lag:            st.Lag,
		State:          string(st.State),
		LastError:      st.LastError,
	})
}

func (h *Handler) createEntity(w http.ResponseWriter, r *http.Request) {
	var body entityDTO
	if !h.decode(w, r, &body) {
		return
	}
	if body.Name == "" {
		h.respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	created, err := h.explorer.CreateEntity(r.Context(), model.Entity{Name: body.Name, Description: body.Description})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, entityFromModel(created))
}

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.explorer.ListEntities(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	out := make([]entityDTO, 0, len(entities))
	for _, e := range entities {
		out = append(out, entityFromModel(e))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var body tagDTO
	if !h.decode(w, r, &body) {
		return
	}
	tag := model.Tag{Name: body.Name, RiskLevel: model.RiskLevel(body.RiskLevel)}
	if tag.Name == "" || !tag.RiskLevel.Valid() {
		h.respondError(w, "name and a risk level of low, medium, high or severe are required", http.StatusBadRequest)
		return
	}
	created, err := h.explorer.CreateTag(r.Context(), tag)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, tagFromModel(created))
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.explorer.ListTags(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tagsFromModel(tags))
}

func (h *Handler) attachTag(w http.ResponseWriter, r *http.Request) {
	entityID, tagID, ok := h.entityTag(w, r)
	if !ok {
		return
	}
	if err := h.explorer.AttachTag(r.Context(), entityID, tagID); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) detachTag(w http.ResponseWriter, r *http.Request) {
	entityID, tagID, ok := h.entityTag(w, r)
	if !ok {
		return
	}
	if err := h.explorer.DetachTag(r.Context(), entityID, tagID); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) entityTag(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	vars := mux.Vars(r)
	entityID, err := strconv.ParseInt(vars["entity"], 10, 64)
	if err != nil {
		h.respondError(w, "entity id must be an integer", http.StatusBadRequest)
		return 0, 0, false
	}
	tagID, err := strconv.ParseInt(vars["tag"], 10, 64)
	if err != nil {
		h.respondError(w, "tag id must be an integer", http.StatusBadRequest)
		return 0, 0, false
	}
	return entityID, tagID, true
}

func (h *Handler) upsertAddress(w http.ResponseWriter, r *http.Request) {
	var body addressDTO
	if !h.decode(w, r, &body) {
		return
	}
	vars := mux.Vars(r)
	err := h.explorer.UpsertAddress(r.Context(), model.Address{
		Network:     vars["network"],
		Address:     vars["address"],
		EntityID:    body.EntityID,
		Description: body.Description,
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	network, address := q.Get("network"), q.Get("address")
	if network == "" || address == "" {
		h.respondError(w, "network and address are required", http.StatusBadRequest)
		return
	}
	info, err := h.explorer.Info(r.Context(), network, address)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, infoFromModel(info))
}

// upstream accepts network (optional), address, asset, hops and min_amount.
func (h *Handler) upstream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := model.TraceRequest{
		Network: q.Get("network"),
		Address: q.Get("address"),
		Asset:   q.Get("asset"),
	}
	if req.Address == "" {
		h.respondError(w, "address is required", http.StatusBadRequest)
		return
	}
	if raw := q.Get("hops"); raw != "" {
		hops, err := strconv.Atoi(raw)
		if err != nil || hops < 0 {
			h.respondError(w, "hops must be a non-negative integer", http.StatusBadRequest)
			return
		}
		req.HopLimit = hops
	}
	if raw := q.Get("min_amount"); raw != "" {
		amount, ok := new(big.Int).SetString(raw, 10)
		if !ok || amount.Sign() < 0 {
			h.respondError(w, "min_amount must be a non-negative integer", http.StatusBadRequest)
			return
		}
		req.MinAmount = amount
	}

	attrs, err := h.explorer.TraceUpstream(r.Context(), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"address": req.Address,
		"sources": attributionsFromModel(attrs),
		"count":   len(attrs),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, message string, status int) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondError(w, err.Error(), status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrNetworkNotFound), errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrArchitectureImmutable):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
