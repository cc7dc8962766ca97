package validation

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
	"github.com/ignatzorin/payout-admin/internal/models"
)

// RegisterBindings добавляет теги withdrawal_status и user_status
// в валидатор, которым gin проверяет тела запросов.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validation: неожиданный движок валидации %T", binding.Validator.Engine())
	}
	return Register(v)
}

// Register добавляет собственные теги в указанный валидатор.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("withdrawal_status", validateWithdrawalStatus); err != nil {
		return fmt.Errorf("validation: withdrawal_status: %w", err)
	}
	if err := v.RegisterValidation("user_status", validateUserStatus); err != nil {
		return fmt.Errorf("validation: user_status: %w", err)
	}
	return nil
}

func validateWithdrawalStatus(fl validator.FieldLevel) bool {
	return valueobject.IsKnownStatus(strings.TrimSpace(fl.Field().String()))
}

func validateUserStatus(fl validator.FieldLevel) bool {
	_, ok := models.ValidUserStatuses[strings.ToLower(fl.Field().String())]
	return ok
}

// Message превращает ошибку привязки в короткий текст для клиента.
func Message(err error) string {
	var errs validator.ValidationErrors
	if ve, ok := err.(validator.ValidationErrors); ok {
		errs = ve
	}
	if len(errs) == 0 {
		return "некорректное тело запроса"
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("поле %s обязательно", field)
	case "withdrawal_status":
		return fmt.Sprintf("недопустимый статус заявки %q", fe.Value())
	case "user_status":
		return fmt.Sprintf("недопустимый статус пользователя %q", fe.Value())
	default:
		return fmt.Sprintf("поле %s заполнено некорректно", field)
	}
}
