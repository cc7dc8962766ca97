package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

// DefaultRecentWithdrawals - размер списка последних заявок по умолчанию.
const DefaultRecentWithdrawals = 5

// processingStatusLiteral - значение, по которому считается карточка
// «в обработке». Сравнение точное, как в исходной выборке.
const processingStatusLiteral = "processing"

// TransactionRepository описывает чтение истории транзакций.
type TransactionRepository interface {
	ListAmountsByType(ctx context.Context, txType string) ([]models.Transaction, error)
}

// DashboardSummary - карточки главной страницы.
type DashboardSummary struct {
	TotalDeposits         float64 `json:"total_deposits"`
	ProcessingWithdrawals int     `json:"processing_withdrawals"`
	TotalUsers            int     `json:"total_users"`
}

// DashboardService собирает данные главной страницы.
type DashboardService struct {
	transactions TransactionRepository
	withdrawals  *WithdrawalService
	withdrawRepo WithdrawalRepository
	users        UserRepository
	log          logrus.FieldLogger
	recentLimit  int
}

func NewDashboardService(
	transactions TransactionRepository,
	withdrawals *WithdrawalService,
	withdrawRepo WithdrawalRepository,
	users UserRepository,
	log logrus.FieldLogger,
	recentLimit int,
) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentWithdrawals
	}
	return &DashboardService{
		transactions: transactions,
		withdrawals:  withdrawals,
		withdrawRepo: withdrawRepo,
		users:        users,
		log:          log,
		recentLimit:  recentLimit,
	}
}

// Summary считает карточки. Первая же ошибка хранилища прерывает сборку.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	deposits, err := s.transactions.ListAmountsByType(ctx, models.TransactionTypeDeposit)
	if err != nil {
		return nil, apperror.Store(err, "не удалось загрузить пополнения")
	}

	processing, err := s.withdrawRepo.CountByStatus(ctx, processingStatusLiteral)
	if err != nil {
		return nil, apperror.Store(err, "не удалось посчитать заявки в обработке")
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperror.Store(err, "не удалось посчитать пользователей")
	}

	return &DashboardSummary{
		TotalDeposits:         SumAmounts(deposits, s.log),
		ProcessingWithdrawals: processing,
		TotalUsers:            users,
	}, nil
}

// RecentWithdrawals возвращает последние заявки; limit <= 0 - значение из конфигурации.
func (s *DashboardService) RecentWithdrawals(ctx context.Context, limit int) ([]WithdrawalView, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.withdrawals.Recent(ctx, limit)
}
