package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

// MockEventProducer segue o estilo testify/mock dos demais fakes do projeto.
type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockReminderMailer struct {
	mock.Mock
}

func (m *MockReminderMailer) SendActivityReminder(to, title, description string, due time.Time) error {
	args := m.Called(to, title, description, due)
	return args.Error(0)
}

type testEnv struct {
	kv         *storage.MemKV
	funnels    *database.FunnelRepository
	leads      *database.LeadRepository
	products   *database.ProductRepository
	activities *database.ActivityRepository
	logs       *database.LogRepository

	createFunnel *usecase.CreateFunnelUseCase
	stages       *usecase.FunnelStagesUseCase
	createLead   *usecase.CreateLeadUseCase
	updateLead   *usecase.UpdateLeadUseCase
	deleteLead   *usecase.DeleteLeadUseCase
	changeStage  *usecase.ChangeStageUseCase
	board        *usecase.BoardController
	metrics      *usecase.MetricsUseCase
}

// newTestEnv monta o grafo inteiro sobre o backend em memória, sem broker.
func newTestEnv(t rapid.TB) *testEnv {
	t.Helper()

	kv := storage.NewMemKV()
	env := &testEnv{
		kv:         kv,
		funnels:    database.NewFunnelRepository(kv),
		leads:      database.NewLeadRepository(kv),
		products:   database.NewProductRepository(kv),
		activities: database.NewActivityRepository(kv),
		logs:       database.NewLogRepository(kv),
	}

	env.createFunnel = usecase.NewCreateFunnelUseCase(env.funnels, env.logs)
	env.stages = usecase.NewFunnelStagesUseCase(env.funnels, env.leads, env.logs)
	env.createLead = usecase.NewCreateLeadUseCase(env.leads, env.funnels, env.products, nil, env.logs)
	env.updateLead = usecase.NewUpdateLeadUseCase(env.leads, env.products, env.logs)
	env.deleteLead = usecase.NewDeleteLeadUseCase(env.leads, nil, env.logs)
	env.changeStage = usecase.NewChangeStageUseCase(env.leads, env.funnels, nil, env.logs)
	env.board = usecase.NewBoardController(env.leads, env.funnels, env.changeStage, env.updateLead)
	env.metrics = usecase.NewMetricsUseCase(env.leads, env.funnels)

	return env
}

func entityProductForTest(t testing.TB, e *testEnv, name string, price float64) *entity.Product {
	t.Helper()
	p := entity.NewProduct(name, price, "", nil)
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

// seedVendas cria o cenário base: funil "Vendas" (Novo → Fechado), produto de
// R$100 e a lead Ana no estágio Novo.
func (e *testEnv) seedVendas(t testing.TB) (*entity.Funnel, *entity.Product, *entity.Lead) {
	t.Helper()
	ctx := context.Background()

	funnel, err := e.createFunnel.Execute(ctx, usecase.CreateFunnelInput{
		Name:   "Vendas",
		Stages: []string{"Novo", "Fechado"},
	})
	require.NoError(t, err)

	product := entity.NewProduct("Plano Premium", 100, "", nil)
	require.NoError(t, e.products.Create(ctx, product))

	lead, err := e.createLead.Execute(ctx, usecase.CreateLeadInput{
		Name:      "Ana",
		ProductID: product.ID,
		FunnelID:  funnel.ID,
		StageID:   funnel.Stages[0].ID,
	})
	require.NoError(t, err)

	return funnel, product, lead
}
