package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log - логгер процесса. Компоненты получают его явно через конструкторы
// как logrus.FieldLogger; глобальная переменная нужна middleware и main.
var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) *logrus.Logger {
	Log = New(level)
	return Log
}

// New создаёт логгер с JSON форматом.
func New(level string) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Discard возвращает логгер, который ничего не пишет (для тестов).
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
