package valueobject

import (
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

// Канонические статусы заявки на вывод.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
	StatusProcessed  = "Processed"
	StatusUnknown    = "Unknown"
)

// StatusAll используется фильтрами списка как «без фильтра».
const StatusAll = "All"

var canonicalStatuses = map[string]string{
	"pending":    StatusPending,
	"processing": StatusProcessing,
	"completed":  StatusCompleted,
	"rejected":   StatusRejected,
	"processed":  StatusProcessed,
}

// NormalizeStatus приводит произвольную строку статуса к отображаемой метке.
// Пустое значение даёт "Unknown", неизвестное значение возвращается
// с заглавной первой буквой и остальными строчными.
func NormalizeStatus(status string) string {
	if status == "" {
		return StatusUnknown
	}

	lower := strings.ToLower(status)
	if canonical, ok := canonicalStatuses[lower]; ok {
		return canonical
	}

	first, size := utf8.DecodeRuneInString(status)
	return strings.ToUpper(string(first)) + strings.ToLower(status[size:])
}

// IsKnownStatus сообщает, входит ли статус (в любом регистре) в словарь.
func IsKnownStatus(status string) bool {
	_, ok := canonicalStatuses[strings.ToLower(status)]
	return ok
}

// IsFinalisingStatus возвращает true для статусов, при переходе в которые
// проставляются processed_at и processed_by.
func IsFinalisingStatus(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

// Action - действие оператора над заявкой.
type Action string

const (
	ActionProcess       Action = "Process"
	ActionApprove       Action = "Approve"
	ActionReject        Action = "Reject"
	ActionMarkProcessed Action = "MarkProcessed"
)

var actionTargets = map[Action]string{
	ActionProcess:       StatusProcessing,
	ActionApprove:       StatusCompleted,
	ActionReject:        StatusRejected,
	ActionMarkProcessed: StatusProcessed,
}

// ParseAction принимает имя действия из URL: process, approve, reject, mark-processed.
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "process":
		return ActionProcess, nil
	case "approve":
		return ActionApprove, nil
	case "reject":
		return ActionReject, nil
	case "mark-processed", "mark_processed", "markprocessed":
		return ActionMarkProcessed, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректное действие")
}

// TargetStatus возвращает статус, в который переводит действие.
func (a Action) TargetStatus() (string, error) {
	status, ok := actionTargets[a]
	if !ok {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректное действие")
	}
	return status, nil
}

// AvailableActions возвращает действия, которые стоит показывать для строки
// с данным статусом. Контроллер переходов их не проверяет.
func AvailableActions(status string) []Action {
	switch NormalizeStatus(status) {
	case StatusPending:
		return []Action{ActionProcess, ActionApprove, ActionReject}
	case StatusProcessed:
		return []Action{}
	default:
		return []Action{ActionMarkProcessed}
	}
}
