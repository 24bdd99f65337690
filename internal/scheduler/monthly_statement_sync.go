package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository"
	"github.com/vfg2006/vendas-dre-api/internal/config"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/aggregating"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/reporting"
)

// MonthlyStatementSyncConfig representa a configuração do agendador de DREs mensais
type MonthlyStatementSyncConfig struct {
	CronSchedule    string
	SyncEnabled     bool
	MonthLookBack   int
	RetentionMonths int
}

// MonthlyStatementSyncService gerencia o agendamento e execução do snapshot mensal de DRE
type MonthlyStatementSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlyStatementSyncConfig
	appConfig           *config.Config
	salesRepo           repository.SalesRepository
	monthlyRepo         repository.MonthlyStatementRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewMonthlyStatementSyncService cria uma nova instância do serviço de snapshot mensal de DRE
func NewMonthlyStatementSyncService(
	salesRepo repository.SalesRepository,
	monthlyRepo repository.MonthlyStatementRepository,
	appConfig *config.Config,
) *MonthlyStatementSyncService {
	syncConfig := MonthlyStatementSyncConfig{
		CronSchedule:    appConfig.MonthlyStatementSync.CronSchedule,
		SyncEnabled:     appConfig.MonthlyStatementSync.Enabled,
		MonthLookBack:   appConfig.MonthlyStatementSync.MonthLookBack,
		RetentionMonths: appConfig.MonthlyStatementSync.RetentionMonths,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"sync_enabled":   syncConfig.SyncEnabled,
		"month_lookback": syncConfig.MonthLookBack,
	}).Info("Configuração do agendador de DREs mensais carregada")

	return &MonthlyStatementSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		salesRepo:   salesRepo,
		monthlyRepo: monthlyRepo,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *MonthlyStatementSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Snapshot mensal de DRE desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de DREs mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlyStatements()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot mensal de DRE: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de DREs mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlyStatements recalcula e persiste a DRE de cada mês fechado do
// período de retrovisão configurado.
func (s *MonthlyStatementSyncService) syncMonthlyStatements() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot mensal de DRE já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando snapshot mensal de DRE")

	processed := 0

	for i := 1; i <= s.config.MonthLookBack; i++ {
		now := time.Now()
		month := now.AddDate(0, -i, 0)
		firstDayOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
		lastDayOfMonth := time.Date(month.Year(), month.Month()+1, 1, 0, 0, 0, 0, month.Location()).AddDate(0, 0, -1)

		logrus.WithFields(logrus.Fields{
			"start_date": firstDayOfMonth.Format(time.DateOnly),
			"end_date":   lastDayOfMonth.Format(time.DateOnly),
		}).Info("Período para snapshot mensal de DRE")

		if err := s.processMonth(firstDayOfMonth, lastDayOfMonth); err != nil {
			logrus.WithError(err).WithField(
				"period", repository.PeriodKey(firstDayOfMonth),
			).Error("Erro ao gerar snapshot mensal de DRE")

			continue
		}

		processed++
	}

	if s.config.RetentionMonths > 0 {
		deleted, err := s.monthlyRepo.DeleteOlderThan(s.config.RetentionMonths)
		if err != nil {
			logrus.WithError(err).Error("Erro ao aplicar a retenção de snapshots mensais")
		} else if deleted > 0 {
			logrus.WithField("deleted", deleted).Info("Snapshots mensais antigos removidos pela retenção")
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"months":   processed,
	}).Info("Snapshot mensal de DRE concluído")

	s.lastSyncCompletedAt = time.Now()
}

// processMonth gera a DRE do mês com os parâmetros padrão da configuração
// e grava (ou atualiza) o snapshot do período.
func (s *MonthlyStatementSyncService) processMonth(startDate, endDate time.Time) error {
	stored, err := s.salesRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		return fmt.Errorf("erro ao buscar as vendas do período: %w", err)
	}

	rows := make([]domain.CanonicalRow, 0, len(stored))
	for _, row := range stored {
		rows = append(rows, *row)
	}

	view := aggregating.BuildView(rows)
	statement := reporting.BuildStatement(view, domain.StatementParams{
		SalarioMinimo:        s.appConfig.Statement.SalarioMinimo,
		HonorarioContador:    s.appConfig.Statement.HonorarioContador,
		PercentualFornecedor: s.appConfig.Statement.PercentualFornecedor,
	})

	entry := &domain.MonthlyStatementEntry{
		Period:    repository.PeriodKey(startDate),
		Statement: statement,
		RowCount:  len(rows),
	}

	if err := s.monthlyRepo.SaveOrUpdate(entry); err != nil {
		return fmt.Errorf("erro ao salvar o snapshot do período: %w", err)
	}

	return nil
}

// TriggerManualSync inicia manualmente um snapshot mensal de DRE
func (s *MonthlyStatementSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot mensal de DRE já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando snapshot manual de DREs mensais")
	go s.syncMonthlyStatements()
}

// GetStatus retorna o status atual da sincronização
func (s *MonthlyStatementSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_lookback":         s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
