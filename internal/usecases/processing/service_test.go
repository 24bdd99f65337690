package processing

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vendas-dre-api/internal/config"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"github.com/vfg2006/vendas-dre-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Statement: config.Statement{
			SalarioMinimo:        1518,
			HonorarioContador:    316,
			PercentualFornecedor: 30,
		},
	}
}

func TestImportRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	raw := []map[string]any{
		{"Data": "01/01/2025", "Cartão": 100.0, "Dinheiro": 50.0},
		{"Data": "02/01/2025", "Pix": 200.0},
		{"Data": "31/02/2025", "Cartão": 10.0}, // data impossível
	}

	mockSalesRepo.EXPECT().
		ExistsByDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		Return(false, nil)
	mockSalesRepo.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(row *domain.CanonicalRow, batchID string) error {
			assert.Equal(t, "01/01/2025", row.DataFormatada)
			assert.NotEmpty(t, batchID)
			return nil
		})

	mockSalesRepo.EXPECT().
		ExistsByDate(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)).
		Return(false, nil)
	mockSalesRepo.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(row *domain.CanonicalRow, batchID string) error {
			assert.Equal(t, "02/01/2025", row.DataFormatada)
			return nil
		})

	result, err := service.ImportRows(raw)

	assert.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.Received)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, 0, result.Duplicates)
}

func TestImportRowsSkipsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	// Data já presente na base: contada como duplicata, nunca salva
	mockSalesRepo.EXPECT().
		ExistsByDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		Return(true, nil)

	result, err := service.ImportRows([]map[string]any{
		{"Data": "01/01/2025", "Cartão": 100.0},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
}

func TestGetAggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	row1 := domain.NewCanonicalRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 100, 50, 0)
	row2 := domain.NewCanonicalRow(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 0, 0, 200)

	mockSalesRepo.EXPECT().
		GetAll().
		Return([]*domain.CanonicalRow{&row1, &row2}, nil)

	view, err := service.GetAggregates(nil, nil)

	assert.NoError(t, err)
	assert.Len(t, view.Daily, 2)
	assert.InDelta(t, 350, view.GrandTotal(), 1e-9)
	assert.InDelta(t, 150, view.Daily[0].Acumulado, 1e-9)
	assert.InDelta(t, 350, view.Daily[1].Acumulado, 1e-9)
}

func TestGetAggregatesUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo).WithCache(time.Minute)

	row1 := domain.NewCanonicalRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 100, 0, 0)

	// Uma única leitura da base para duas chamadas
	mockSalesRepo.EXPECT().
		GetAll().
		Return([]*domain.CanonicalRow{&row1}, nil).
		Times(1)

	first, err := service.GetAggregates(nil, nil)
	assert.NoError(t, err)

	second, err := service.GetAggregates(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestImportRowsInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo).WithCache(time.Minute)

	row1 := domain.NewCanonicalRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 100, 0, 0)
	row2 := domain.NewCanonicalRow(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 0, 0, 200)

	gomock.InOrder(
		mockSalesRepo.EXPECT().
			GetAll().
			Return([]*domain.CanonicalRow{&row1}, nil),
		mockSalesRepo.EXPECT().
			ExistsByDate(gomock.Any()).
			Return(false, nil),
		mockSalesRepo.EXPECT().
			SaveOrUpdate(gomock.Any(), gomock.Any()).
			Return(nil),
		mockSalesRepo.EXPECT().
			GetAll().
			Return([]*domain.CanonicalRow{&row1, &row2}, nil),
	)

	before, err := service.GetAggregates(nil, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 100, before.GrandTotal(), 1e-9)

	_, err = service.ImportRows([]map[string]any{
		{"Data": "02/01/2025", "Pix": 200.0},
	})
	assert.NoError(t, err)

	after, err := service.GetAggregates(nil, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 300, after.GrandTotal(), 1e-9)
}

func TestGetCanonicalRowsDateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	row1 := domain.NewCanonicalRow(start, 100, 0, 0)

	mockSalesRepo.EXPECT().
		GetByDateRange(start, end).
		Return([]*domain.CanonicalRow{&row1}, nil)

	rows, err := service.GetCanonicalRows(&start, &end)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "01/01/2025", rows[0].DataFormatada)
}

func TestGetCanonicalRowsInvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.GetCanonicalRows(&start, &end)

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetStatementDefaultsAndOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	row1 := domain.NewCanonicalRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 100, 50, 0)
	row2 := domain.NewCanonicalRow(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 0, 0, 200)

	mockSalesRepo.EXPECT().
		GetAll().
		Return([]*domain.CanonicalRow{&row1, &row2}, nil).
		Times(2)

	// Sem override: parâmetros padrão da configuração
	statement, err := service.GetStatement(nil, nil, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 1518*domain.EncargosFolha, statement.DespesasPessoal, 1e-9)
	assert.InDelta(t, 316, statement.DespesasContabeis, 1e-9)

	// Override parcial: somente o salário muda, o resto cai no padrão
	statement, err = service.GetStatement(nil, nil, &domain.StatementParams{SalarioMinimo: 1550})
	assert.NoError(t, err)
	assert.InDelta(t, 1550*domain.EncargosFolha, statement.DespesasPessoal, 1e-9)
	assert.InDelta(t, 316, statement.DespesasContabeis, 1e-9)
	assert.InDelta(t, 350*0.30, statement.CPV, 1e-9)
}

func TestGetStatementEmptyBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	service := NewService(testConfig(), mockSalesRepo)

	mockSalesRepo.EXPECT().
		GetAll().
		Return([]*domain.CanonicalRow{}, nil)

	statement, err := service.GetStatement(nil, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.FinancialStatement{}, statement)
}
