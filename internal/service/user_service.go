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
	"github.com/ignatzorin/payout-admin/internal/store"
)

// UserRepository описывает доступ к пользователям, нужный сервису.
type UserRepository interface {
	List(ctx context.Context, status string) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id, status string, fields map[string]any) (*models.User, error)
}

// UserFilter - фильтры списка пользователей.
type UserFilter struct {
	Status string
	Search string
}

// UserView - пользователь с вычисленным отображаемым именем.
type UserView struct {
	models.User
	DisplayName string `json:"display_name"`
}

// UserService - просмотр пользователей и смена их статуса.
type UserService struct {
	repo      UserRepository
	publisher events.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewUserService(repo UserRepository, publisher events.Publisher, log logrus.FieldLogger) *UserService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &UserService{repo: repo, publisher: publisher, log: log, now: time.Now}
}

// List возвращает пользователей. Поиск по имени и email выполняется
// без учёта регистра на стороне сервиса.
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]UserView, error) {
	status := strings.TrimSpace(filter.Status)
	if strings.EqualFold(status, valueobject.StatusAll) {
		status = ""
	}

	users, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperror.Store(err, "не удалось загрузить пользователей")
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	views := make([]UserView, 0, len(users))
	for i := range users {
		u := users[i]
		if search != "" && !matchesSearch(&u, search) {
			continue
		}
		views = append(views, UserView{User: u, DisplayName: u.DisplayName()})
	}
	return views, nil
}

// Count возвращает общее число пользователей.
func (s *UserService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperror.Store(err, "не удалось посчитать пользователей")
	}
	return n, nil
}

// UpdateStatus активирует или деактивирует пользователя.
func (s *UserService) UpdateStatus(ctx context.Context, id, status string) (*models.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ErrUserIDRequired
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := models.ValidUserStatuses[status]; !ok {
		return nil, apperror.Validation("статус пользователя должен быть active или inactive")
	}

	u, err := s.repo.UpdateStatus(ctx, id, status, map[string]any{"updated_at": s.now().UTC()})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrUserNotFound.Message)
		}
		return nil, apperror.Store(err, "не удалось обновить статус пользователя")
	}

	if err := s.publisher.Publish(ctx, events.Event{Type: events.TypeUserUpdated, Data: u}); err != nil {
		s.log.WithError(err).WithField("user_id", id).Warn("не удалось отправить событие об изменении пользователя")
	}
	return u, nil
}

func matchesSearch(u *models.User, search string) bool {
	if u.Name != nil && strings.Contains(strings.ToLower(*u.Name), search) {
		return true
	}
	return u.Email != nil && strings.Contains(strings.ToLower(*u.Email), search)
}
