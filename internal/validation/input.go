package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxOperatorIDLength           = 128
	MaxTransactionReferenceLength = 200
	MaxNotesLength                = 2000
	MaxSearchLength               = 100
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateOperatorID проверяет идентификатор оператора из заголовка X-Operator-ID.
func ValidateOperatorID(id string) error {
	if err := ValidateLength("идентификатор оператора", id, 0, MaxOperatorIDLength); err != nil {
		return err
	}
	if strings.ContainsAny(id, "\r\n\t") {
		return fmt.Errorf("идентификатор оператора содержит недопустимые символы")
	}
	return nil
}

// ValidateTransactionReference проверяет номер платёжной транзакции.
func ValidateTransactionReference(ref string) error {
	return ValidateLength("номер транзакции", strings.TrimSpace(ref), 0, MaxTransactionReferenceLength)
}

// ValidateNotes проверяет заметку к заявке.
func ValidateNotes(notes string) error {
	return ValidateLength("заметка", notes, 0, MaxNotesLength)
}

// ValidateSearch проверяет строку поиска пользователей.
func ValidateSearch(search string) error {
	return ValidateLength("строка поиска", search, 0, MaxSearchLength)
}
