package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
	"github.com/ignatzorin/payout-admin/internal/events"
	"github.com/ignatzorin/payout-admin/internal/models"
	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
	"github.com/ignatzorin/payout-admin/internal/repository"
	"github.com/ignatzorin/payout-admin/internal/store"
)

// WithdrawalRepository описывает доступ к заявкам, нужный сервису.
type WithdrawalRepository interface {
	List(ctx context.Context, filter repository.WithdrawalFilter) ([]models.Withdrawal, error)
	ListForStats(ctx context.Context) ([]models.Withdrawal, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*models.Withdrawal, error)
}

// TransitionInput - запрошенный переход заявки.
type TransitionInput struct {
	Status               string
	ProcessedBy          string
	TransactionReference string
	Notes                string
}

// WithdrawalView - строка списка для админ-панели.
type WithdrawalView struct {
	models.Withdrawal
	RawStatus        string               `json:"raw_status"`
	AvailableActions []valueobject.Action `json:"available_actions"`
}

// WithdrawalService управляет жизненным циклом заявок на вывод.
type WithdrawalService struct {
	repo            WithdrawalRepository
	publisher       events.Publisher
	log             logrus.FieldLogger
	now             func() time.Time
	defaultOperator string
}

// WithdrawalOption настраивает сервис.
type WithdrawalOption func(*WithdrawalService)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) WithdrawalOption {
	return func(s *WithdrawalService) { s.now = now }
}

// WithPublisher задаёт получателя событий об изменениях.
func WithPublisher(p events.Publisher) WithdrawalOption {
	return func(s *WithdrawalService) { s.publisher = p }
}

// WithDefaultOperator задаёт processed_by для переходов без оператора.
func WithDefaultOperator(id string) WithdrawalOption {
	return func(s *WithdrawalService) { s.defaultOperator = id }
}

func NewWithdrawalService(repo WithdrawalRepository, log logrus.FieldLogger, opts ...WithdrawalOption) *WithdrawalService {
	s := &WithdrawalService{
		repo:            repo,
		publisher:       events.Noop{},
		log:             log,
		now:             time.Now,
		defaultOperator: "current-user-id",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List возвращает заявки с нормализованным статусом и доступными действиями.
// Пустой статус и "All" означают выборку без фильтра.
func (s *WithdrawalService) List(ctx context.Context, status string) ([]WithdrawalView, error) {
	rows, err := s.repo.List(ctx, repository.WithdrawalFilter{Status: statusFilter(status)})
	if err != nil {
		return nil, apperror.Store(err, "не удалось загрузить заявки на вывод")
	}
	return toViews(rows), nil
}

// Recent возвращает последние limit заявок вместе с профилями.
func (s *WithdrawalService) Recent(ctx context.Context, limit int) ([]WithdrawalView, error) {
	rows, err := s.repo.List(ctx, repository.WithdrawalFilter{Limit: limit})
	if err != nil {
		return nil, apperror.Store(err, "не удалось загрузить последние заявки")
	}
	return toViews(rows), nil
}

// Stats загружает id, amount и status всех заявок и считает сводку.
func (s *WithdrawalService) Stats(ctx context.Context) (WithdrawalStats, error) {
	rows, err := s.repo.ListForStats(ctx)
	if err != nil {
		return WithdrawalStats{}, apperror.Store(err, "не удалось загрузить статистику заявок")
	}
	return AggregateWithdrawalStats(rows, s.log), nil
}

// Transition переводит заявку в новый статус одним обновлением строки.
// Допустимость перехода не проверяется: последняя запись побеждает.
func (s *WithdrawalService) Transition(ctx context.Context, id string, in TransitionInput) (*models.Withdrawal, error) {
	id = strings.TrimSpace(id)
	target := strings.TrimSpace(in.Status)
	if id == "" {
		return nil, apperror.ErrWithdrawalIDRequired
	}
	if target == "" {
		return nil, apperror.Validation("требуется статус заявки")
	}
	if !valueobject.IsKnownStatus(target) {
		return nil, apperror.Validation("неизвестный статус заявки: " + target)
	}

	status := valueobject.NormalizeStatus(target)
	now := s.now().UTC()
	fields := map[string]any{
		"status":     status,
		"updated_at": now,
	}

	if valueobject.IsFinalisingStatus(status) {
		operator := in.ProcessedBy
		if operator == "" {
			operator = s.defaultOperator
		}
		fields["processed_at"] = now
		fields["processed_by"] = operator
		if in.TransactionReference != "" {
			fields["transaction_reference"] = in.TransactionReference
		}
		if in.Notes != "" {
			fields["notes"] = in.Notes
		}
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrWithdrawalNotFound.Message)
		}
		return nil, apperror.Store(err, "не удалось обновить заявку на вывод")
	}

	s.log.WithFields(logrus.Fields{
		"withdrawal_id": id,
		"status":        status,
	}).Info("статус заявки изменён")

	s.publish(ctx, updated)
	return updated, nil
}

// ApplyAction выполняет действие оператора и пишет в notes, кто и когда его сделал.
func (s *WithdrawalService) ApplyAction(ctx context.Context, id string, action valueobject.Action, operator string) (*models.Withdrawal, error) {
	target, err := action.TargetStatus()
	if err != nil {
		return nil, err
	}

	return s.Transition(ctx, id, TransitionInput{
		Status:      target,
		ProcessedBy: operator,
		Notes:       ActionNote(action, s.now()),
	})
}

// ActionNote формирует текст заметки для действия оператора.
func ActionNote(action valueobject.Action, at time.Time) string {
	stamp := at.UTC().Format(time.RFC3339)
	switch action {
	case valueobject.ActionMarkProcessed:
		return "Marked as processed by admin on " + stamp
	case valueobject.ActionProcess:
		return "Processed by admin on " + stamp
	default:
		return string(action) + "d by admin on " + stamp
	}
}

func (s *WithdrawalService) publish(ctx context.Context, w *models.Withdrawal) {
	ev := events.Event{Type: events.TypeWithdrawalUpdated, Data: w}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithField("withdrawal_id", w.ID.String()).Warn("не удалось отправить событие об изменении заявки")
	}
}

func toViews(rows []models.Withdrawal) []WithdrawalView {
	views := make([]WithdrawalView, 0, len(rows))
	for _, w := range rows {
		raw := w.Status
		w.Status = valueobject.NormalizeStatus(raw)
		views = append(views, WithdrawalView{
			Withdrawal:       w,
			RawStatus:        raw,
			AvailableActions: valueobject.AvailableActions(raw),
		})
	}
	return views
}

// statusFilter превращает "All" и пустую строку в отсутствие фильтра.
func statusFilter(status string) string {
	status = strings.TrimSpace(status)
	if strings.EqualFold(status, valueobject.StatusAll) {
		return ""
	}
	return status
}
