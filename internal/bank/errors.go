package bank

import "fmt"

// ValidationError — некорректный пользовательский ввод, перехватывается
// до любого сетевого вызова. Field называет первое непрошедшее поле.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// AuthError — не-200 на логине или на запросе с токеном.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// TransferRejectedError — перевод отклонен: имя получателя не найдено,
// commit вернул не-200 или машина состояний запретила операцию.
// Клиентская сторона никогда не применяет перевод частично.
type TransferRejectedError struct {
	Reason     string
	StatusCode int
}

func (e *TransferRejectedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transfer rejected (status %d): %s", e.StatusCode, e.Reason)
	}
	return "transfer rejected: " + e.Reason
}

// NetworkError — транспортный сбой или таймаут запроса.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
