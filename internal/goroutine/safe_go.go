package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger logrus.FieldLogger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(logger logrus.FieldLogger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go rh.Run(fn)
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go rh.Run(func() { fn(ctx) })
}

// Run выполняет fn в текущей горутине и логирует panic вместо падения процесса.
func (rh *RecoveryHandler) Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rh.logger.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("panic в горутине")
		}
	}()
	fn()
}

// DefaultRecoveryHandler - глобальный обработчик, пишет в стандартный логгер logrus
var DefaultRecoveryHandler = NewRecoveryHandler(logrus.StandardLogger())

// SetLogger переключает глобальный обработчик на логгер приложения.
func SetLogger(logger logrus.FieldLogger) {
	DefaultRecoveryHandler = NewRecoveryHandler(logger)
}

// SafeGo - упрощенная функция для запуска безопасной горутины
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// SafeGoWithContext - упрощенная функция для запуска безопасной горутины с контекстом
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
