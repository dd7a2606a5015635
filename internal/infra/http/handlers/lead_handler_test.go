package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/infra/http/handlers"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type handlerEnv struct {
	router     *chi.Mux
	funnels    *database.FunnelRepository
	leads      *database.LeadRepository
	products   *database.ProductRepository
	activities *database.ActivityRepository

	funnel  *entity.Funnel
	product *entity.Product
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	ctx := context.Background()

	kv := storage.NewMemKV()
	funnelRepo := database.NewFunnelRepository(kv)
	leadRepo := database.NewLeadRepository(kv)
	productRepo := database.NewProductRepository(kv)
	activityRepo := database.NewActivityRepository(kv)
	logRepo := database.NewLogRepository(kv)

	funnel := entity.NewFunnel("Vendas", []string{"Novo", "Fechado"})
	require.NoError(t, funnelRepo.Create(ctx, funnel))
	product := entity.NewProduct("Plano Premium", 100, "", nil)
	require.NoError(t, productRepo.Create(ctx, product))

	createUC := usecase.NewCreateLeadUseCase(leadRepo, funnelRepo, productRepo, nil, logRepo)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo, productRepo, logRepo)
	deleteUC := usecase.NewDeleteLeadUseCase(leadRepo, nil, logRepo)
	changeUC := usecase.NewChangeStageUseCase(leadRepo, funnelRepo, nil, logRepo)
	board := usecase.NewBoardController(leadRepo, funnelRepo, changeUC, updateUC)

	productUC := usecase.NewProductUseCase(productRepo, logRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo, logRepo, nil)

	leadHandler := handlers.NewLeadHandler(leadRepo, funnelRepo, createUC, updateUC, deleteUC, changeUC)
	boardHandler := handlers.NewBoardHandler(board)
	productHandler := handlers.NewProductHandler(productRepo, productUC)
	activityHandler := handlers.NewActivityHandler(activityUC)

	r := chi.NewRouter()
	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Put("/{id}/stage", leadHandler.ChangeStage)
	})
	r.Post("/capture", leadHandler.Capture)
	r.Route("/board", func(r chi.Router) {
		r.Post("/reorder", boardHandler.Reorder)
		r.Post("/move", boardHandler.RequestMove)
		r.Post("/move/confirm", boardHandler.ConfirmMove)
		r.Post("/move/cancel", boardHandler.CancelMove)
	})
	r.Put("/products/{id}", productHandler.Update)
	r.Put("/activities/{id}", activityHandler.Update)

	return &handlerEnv{
		router:     r,
		funnels:    funnelRepo,
		leads:      leadRepo,
		products:   productRepo,
		activities: activityRepo,
		funnel:     funnel,
		product:    product,
	}
}

func (e *handlerEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateLeadEndpoint(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(t, http.MethodPost, "/leads", map[string]any{
		"name":      "Ana",
		"phone":     "(11) 98888-7777",
		"productId": env.product.ID,
		"funnelId":  env.funnel.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, "Ana", lead.Name)
	assert.Equal(t, env.funnel.Stages[0].ID, lead.StageID)
	assert.Equal(t, float64(100), lead.ProductPrice)
}

func TestCreateLeadEndpointValidation(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(t, http.MethodPost, "/leads", map[string]any{
		"name":      "",
		"productId": env.product.ID,
		"funnelId":  env.funnel.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestChangeStageEndpoint(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	lead := entity.NewLead("Ana", "", env.product, env.funnel.ID, env.funnel.Stages[0].ID)
	require.NoError(t, env.leads.Create(ctx, lead))

	rec := env.do(t, http.MethodPut, "/leads/"+lead.ID+"/stage", map[string]any{
		"toStageId": env.funnel.Stages[1].ID,
		"reason":    "Contrato assinado",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var moved entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moved))
	assert.Equal(t, env.funnel.Stages[1].ID, moved.StageID)
	require.Len(t, moved.StageHistory, 1)

	// Motivo em branco volta 400 e não toca no lead.
	rec = env.do(t, http.MethodPut, "/leads/"+lead.ID+"/stage", map[string]any{
		"toStageId": env.funnel.Stages[0].ID,
		"reason":    "  ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeStageEndpointUnknownLead(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(t, http.MethodPut, "/leads/nao-existe/stage", map[string]any{
		"toStageId": env.funnel.Stages[1].ID,
		"reason":    "qualquer",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLeadEndpointIdempotent(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	lead := entity.NewLead("Ana", "", env.product, env.funnel.ID, env.funnel.Stages[0].ID)
	require.NoError(t, env.leads.Create(ctx, lead))

	rec := env.do(t, http.MethodDelete, "/leads/"+lead.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/leads/"+lead.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

// Campo desconhecido no corpo de update é rejeitado, não descartado. Em
// especial, "stageId" num PUT de lead: estágio só muda pela rota de estágio.
func TestUpdateLeadRejectsUnknownFields(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	lead := entity.NewLead("Ana", "", env.product, env.funnel.ID, env.funnel.Stages[0].ID)
	require.NoError(t, env.leads.Create(ctx, lead))

	rec := env.do(t, http.MethodPut, "/leads/"+lead.ID, map[string]any{
		"name":    "Ana Maria",
		"stageId": env.funnel.Stages[1].ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "stageId")

	// Nada aplicado, nem os campos conhecidos do mesmo corpo.
	stored, err := env.leads.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, env.funnel.Stages[0].ID, stored.StageID)
}

func TestUpdateProductRejectsUnknownFields(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	rec := env.do(t, http.MethodPut, "/products/"+env.product.ID, map[string]any{
		"price":    200,
		"discount": 50,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := env.products.FindByID(ctx, env.product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), stored.Price)
}

func TestUpdateActivityRejectsUnknownFields(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	activity := entity.NewActivity(entity.ActivityCall, "Ligar para Ana", "", "system", nil, nil)
	require.NoError(t, env.activities.Create(ctx, activity))

	rec := env.do(t, http.MethodPut, "/activities/"+activity.ID, map[string]any{
		"status":   entity.ActivityCompleted,
		"priority": "alta",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := env.activities.FindByID(ctx, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityPending, stored.Status)
}

func TestBoardMoveFlowEndpoints(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()

	lead := entity.NewLead("Ana", "", env.product, env.funnel.ID, env.funnel.Stages[0].ID)
	require.NoError(t, env.leads.Create(ctx, lead))

	// Confirmar sem movimento pendente é conflito.
	rec := env.do(t, http.MethodPost, "/board/move/confirm", map[string]any{"reason": "x"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/board/move", map[string]any{
		"leadId":    lead.ID,
		"toStageId": env.funnel.Stages[1].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/board/move/confirm", map[string]any{
		"reason": "Contrato assinado",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string      `json:"message"`
		Lead    entity.Lead `json:"lead"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "movido para")
	assert.Equal(t, env.funnel.Stages[1].ID, resp.Lead.StageID)
}

func TestCaptureEndpoint(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(t, http.MethodPost, "/capture", map[string]any{
		"name":      "Visitante",
		"phone":     "(21) 97777-6666",
		"productId": env.product.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, env.funnel.ID, lead.FunnelID)
	assert.Equal(t, env.funnel.Stages[0].ID, lead.StageID)
}

func TestCaptureEndpointRateLimited(t *testing.T) {
	env := newHandlerEnv(t)

	var last int
	for i := 0; i < 11; i++ {
		rec := env.do(t, http.MethodPost, "/capture", map[string]any{
			"name":      "Visitante",
			"productId": env.product.ID,
		})
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
