package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
)

// WithdrawalsSheet - имя листа выгрузки заявок.
const WithdrawalsSheet = "Withdrawals"

var withdrawalExportHeader = []any{
	"ID", "User", "Email", "Amount", "Status", "Requested", "Processed", "Processed By", "Reference", "Notes",
}

// ExportService выгружает списки в XLSX.
type ExportService struct {
	withdrawals *WithdrawalService
}

func NewExportService(withdrawals *WithdrawalService) *ExportService {
	return &ExportService{withdrawals: withdrawals}
}

// WithdrawalsXLSX пишет в w книгу с одним листом: заголовок и по строке на заявку.
func (s *ExportService) WithdrawalsXLSX(ctx context.Context, status string, w io.Writer) error {
	rows, err := s.withdrawals.List(ctx, status)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WithdrawalsSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(WithdrawalsSheet, "A1", &withdrawalExportHeader); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, v := range rows {
		row := []any{
			v.ID.String(),
			profileName(v),
			profileEmail(v),
			valueobject.FormatUSD(v.Amount.Float64()),
			v.Status,
			valueobject.FormatDate(v.CreatedAt),
			valueobject.FormatDate(v.ProcessedAt),
			deref(v.ProcessedBy),
			deref(v.TransactionReference),
			deref(v.Notes),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell: %w", err)
		}
		if err := f.SetSheetRow(WithdrawalsSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func profileName(v WithdrawalView) string {
	if v.User != nil && v.User.FullName != nil && *v.User.FullName != "" {
		return *v.User.FullName
	}
	return "Unknown User"
}

func profileEmail(v WithdrawalView) string {
	if v.User != nil && v.User.Email != nil {
		return *v.User.Email
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
