package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/infra/http/middleware"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type LeadHandler struct {
	Repo          *database.LeadRepository
	CreateUC      *usecase.CreateLeadUseCase
	UpdateUC      *usecase.UpdateLeadUseCase
	DeleteUC      *usecase.DeleteLeadUseCase
	ChangeStageUC *usecase.ChangeStageUseCase
	FunnelRepo    *database.FunnelRepository
	rateLimiter   *RateLimiter
}

func NewLeadHandler(
	repo *database.LeadRepository,
	funnelRepo *database.FunnelRepository,
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	changeStageUC *usecase.ChangeStageUseCase,
) *LeadHandler {
	return &LeadHandler{
		Repo:          repo,
		FunnelRepo:    funnelRepo,
		CreateUC:      createUC,
		UpdateUC:      updateUC,
		DeleteUC:      deleteUC,
		ChangeStageUC: changeStageUC,
		rateLimiter:   NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		leads []entity.Lead
		err   error
	)
	if funnelID := r.URL.Query().Get("funnelId"); funnelID != "" {
		leads, err = h.Repo.GetByFunnel(ctx, funnelID)
	} else {
		leads, err = h.Repo.GetAll(ctx)
	}
	if err != nil {
		writeError(w, &usecase.StorageError{Op: "load leads", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, usecase.NotFoundError{Entity: "lead", ID: id})
			return
		}
		writeError(w, &usecase.StorageError{Op: "load lead", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeStageRequest struct {
	ToStageID string `json:"toStageId"`
	Reason    string `json:"reason"`
}

// ChangeStage é o caminho direto (sem board) para mover um lead de estágio.
func (h *LeadHandler) ChangeStage(w http.ResponseWriter, r *http.Request) {
	var req changeStageRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	lead, err := h.ChangeStageUC.Execute(r.Context(), usecase.ChangeStageInput{
		LeadID:    chi.URLParam(r, "id"),
		ToStageID: req.ToStageID,
		Reason:    req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordStageChange()
	writeJSON(w, http.StatusOK, lead)
}

type captureLeadRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	ProductID string `json:"productId"`
}

// Capture é o quick-add público: entra no primeiro estágio do primeiro funil.
// Rate limit por IP porque o endpoint fica exposto em landing pages.
func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{"too many requests, please try again later"})
		return
	}

	var req captureLeadRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	funnels, err := h.FunnelRepo.GetAll(ctx)
	if err != nil {
		writeError(w, &usecase.StorageError{Op: "load funnels", Err: err})
		return
	}
	if len(funnels) == 0 {
		writeError(w, usecase.ConflictError{Message: "no funnel configured"})
		return
	}

	lead, err := h.CreateUC.Execute(ctx, usecase.CreateLeadInput{
		Name:      req.Name,
		Phone:     req.Phone,
		ProductID: req.ProductID,
		FunnelID:  funnels[0].ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, lead)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	if v.count >= rl.limit {
		return false
	}

	v.count++
	return true
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > 3*rl.window {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
