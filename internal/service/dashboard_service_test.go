package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/payout-admin/internal/logger"
	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
	"github.com/ignatzorin/payout-admin/internal/repository"
	"github.com/ignatzorin/payout-admin/internal/store/memstore"
)

func seedDashboard() *memstore.Store {
	return memstore.New().
		Seed(models.TableTransactionHistory,
			memstore.Row{"id": "t1", "transaction_type": "deposit", "amount": "1,000.00"},
			memstore.Row{"id": "t2", "transaction_type": "deposit", "amount": 250.5},
			memstore.Row{"id": "t3", "transaction_type": "withdrawal", "amount": 99},
		).
		Seed(models.TableWithdrawalRequests,
			memstore.Row{"id": "w1", "user_id": "u1", "amount": "$10.00", "status": "processing", "created_at": "2024-01-01T00:00:00Z"},
			memstore.Row{"id": "w2", "user_id": "u1", "amount": 20, "status": "Processing", "created_at": "2024-01-02T00:00:00Z"},
			memstore.Row{"id": "w3", "user_id": "u2", "amount": 30, "status": "Pending", "created_at": "2024-01-03T00:00:00Z"},
		).
		Seed(models.TableUsers,
			memstore.Row{"id": "u1", "status": "active", "created_at": "2024-01-01T00:00:00Z"},
			memstore.Row{"id": "u2", "status": "inactive", "created_at": "2024-01-01T00:00:00Z"},
		).
		Seed(models.TableProfiles,
			memstore.Row{"id": "u1", "full_name": "Alice Doe", "email": "alice@example.com"},
		)
}

type dashboardDeps struct {
	dashboard *DashboardService
	export    *ExportService
}

func newDashboardDeps(s *memstore.Store) dashboardDeps {
	log := logger.Discard()
	withdrawRepo := repository.NewWithdrawalRepository(s, repository.NewProfileRepository(s), log)
	withdrawals := NewWithdrawalService(withdrawRepo, log)
	return dashboardDeps{
		dashboard: NewDashboardService(
			repository.NewTransactionRepository(s),
			withdrawals,
			withdrawRepo,
			repository.NewUserRepository(s),
			log,
			0,
		),
		export: NewExportService(withdrawals),
	}
}

func TestDashboardService_Summary(t *testing.T) {
	deps := newDashboardDeps(seedDashboard())

	summary, err := deps.dashboard.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1250.5, summary.TotalDeposits)
	// учитывается только точное значение "processing"
	assert.Equal(t, 1, summary.ProcessingWithdrawals)
	assert.Equal(t, 2, summary.TotalUsers)
}

func TestDashboardService_SummaryStoreError(t *testing.T) {
	deps := newDashboardDeps(seedDashboard().FailOn(models.TableUsers, errors.New("down")))

	_, err := deps.dashboard.Summary(context.Background())
	assert.True(t, apperror.IsStore(err))
}

func TestDashboardService_RecentWithdrawalsDefaultLimit(t *testing.T) {
	s := seedDashboard()
	for _, id := range []string{"w4", "w5", "w6", "w7"} {
		s.Seed(models.TableWithdrawalRequests, memstore.Row{"id": id, "amount": 1, "status": "Pending", "created_at": "2023-12-01T00:00:00Z"})
	}
	deps := newDashboardDeps(s)

	rows, err := deps.dashboard.RecentWithdrawals(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, DefaultRecentWithdrawals)
	assert.Equal(t, "w3", rows[0].ID.String())
	require.NotNil(t, rows[1].User)
	assert.Equal(t, "Alice Doe", *rows[1].User.FullName)

	rows, err = deps.dashboard.RecentWithdrawals(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportService_WithdrawalsXLSX(t *testing.T) {
	deps := newDashboardDeps(seedDashboard())

	var buf bytes.Buffer
	require.NoError(t, deps.export.WithdrawalsXLSX(context.Background(), "", &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WithdrawalsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"w3", "Unknown User", "", "$30.00", "Pending", "Jan 3, 2024", "N/A"}, rows[1][:7])
	assert.Equal(t, "Alice Doe", rows[2][1])
	assert.Equal(t, "$10.00", rows[3][3])
}

func TestExportService_StoreError(t *testing.T) {
	deps := newDashboardDeps(seedDashboard().FailOn(models.TableWithdrawalRequests, errors.New("down")))

	var buf bytes.Buffer
	err := deps.export.WithdrawalsXLSX(context.Background(), "", &buf)
	assert.True(t, apperror.IsStore(err))
	assert.Zero(t, buf.Len())
}
