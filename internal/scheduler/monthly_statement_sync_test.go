package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vendas-dre-api/internal/config"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testAppConfig() *config.Config {
	return &config.Config{
		Statement: config.Statement{
			SalarioMinimo:        1550,
			HonorarioContador:    316,
			PercentualFornecedor: 30,
		},
		MonthlyStatementSync: config.MonthlyStatementSync{
			CronSchedule:  "0 5 * * *",
			Enabled:       true,
			MonthLookBack: 1,
		},
	}
}

func TestMonthlyStatementSyncService_processMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	mockMonthlyRepo := mocks.NewMockMonthlyStatementRepository(ctrl)

	service := NewMonthlyStatementSyncService(mockSalesRepo, mockMonthlyRepo, testAppConfig())

	startDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	row1 := domain.NewCanonicalRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 100, 50, 0)
	row2 := domain.NewCanonicalRow(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 0, 0, 200)

	mockSalesRepo.EXPECT().
		GetByDateRange(startDate, endDate).
		Return([]*domain.CanonicalRow{&row1, &row2}, nil)

	mockMonthlyRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(entry *domain.MonthlyStatementEntry) error {
			assert.Equal(t, "01-2025", entry.Period)
			assert.Equal(t, 2, entry.RowCount)

			// DRE calculada com os parâmetros padrão da configuração
			assert.InDelta(t, 350, entry.Statement.ReceitaBruta, 1e-9)
			assert.InDelta(t, 18, entry.Statement.ImpostoSimples, 1e-9)
			assert.InDelta(t, 332, entry.Statement.ReceitaLiquida, 1e-9)
			assert.InDelta(t, 2402.5, entry.Statement.DespesasPessoal, 1e-9)
			assert.InDelta(t, -2491.5, entry.Statement.LucroLiquido, 1e-9)

			return nil
		})

	err := service.processMonth(startDate, endDate)
	assert.NoError(t, err)
}

func TestMonthlyStatementSyncService_processMonthEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	mockMonthlyRepo := mocks.NewMockMonthlyStatementRepository(ctrl)

	service := NewMonthlyStatementSyncService(mockSalesRepo, mockMonthlyRepo, testAppConfig())

	startDate := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	mockSalesRepo.EXPECT().
		GetByDateRange(startDate, endDate).
		Return([]*domain.CanonicalRow{}, nil)

	// Mês sem vendas grava snapshot inteiramente zerado
	mockMonthlyRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(entry *domain.MonthlyStatementEntry) error {
			assert.Equal(t, "02-2025", entry.Period)
			assert.Equal(t, 0, entry.RowCount)
			assert.Equal(t, &domain.FinancialStatement{}, entry.Statement)
			return nil
		})

	err := service.processMonth(startDate, endDate)
	assert.NoError(t, err)
}

func TestMonthlyStatementSyncService_syncRunsLookbackAndRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRepository(ctrl)
	mockMonthlyRepo := mocks.NewMockMonthlyStatementRepository(ctrl)

	cfg := testAppConfig()
	cfg.MonthlyStatementSync.MonthLookBack = 2
	cfg.MonthlyStatementSync.RetentionMonths = 24

	service := NewMonthlyStatementSyncService(mockSalesRepo, mockMonthlyRepo, cfg)

	// Dois meses de retrovisão, cada um com sua leitura e gravação
	mockSalesRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(startDate, endDate time.Time) ([]*domain.CanonicalRow, error) {
			assert.Equal(t, 1, startDate.Day())
			assert.Equal(t, startDate.Month(), endDate.Month())
			return []*domain.CanonicalRow{}, nil
		}).
		Times(2)

	mockMonthlyRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Return(nil).
		Times(2)

	mockMonthlyRepo.EXPECT().
		DeleteOlderThan(24).
		Return(int64(3), nil)

	service.syncMonthlyStatements()

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.NotEqual(t, time.Time{}, status["last_sync_completed_at"])
}

func TestMonthlyStatementSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMonthlyStatementSyncService(
		mocks.NewMockSalesRepository(ctrl),
		mocks.NewMockMonthlyStatementRepository(ctrl),
		testAppConfig(),
	)

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "0 5 * * *", status["sync_cron"])
	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, 1, status["month_lookback"])
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "01-2025", repository.PeriodKey(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12-2024", repository.PeriodKey(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}
