package transfer

import (
	"math"
	"strconv"
	"strings"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
)

// Draft — короткоживущее описание еще не отправленного перевода.
// Строится один раз в точке входа (ручная форма, QR, предзаполнение),
// после чего неизменен и передается по значению в поток подтверждения.
type Draft struct {
	ToIban    string
	Amount    float64
	Notes     string
	OffRecord bool
}

// NewDraft валидирует поля и нормализует IBAN и назначение к верхнему
// регистру, как этого ждет сервер. Сумма обязана разбираться в конечное
// число; положительность здесь не требуется — ее повторно проверяет
// commit. Ошибка называет первое непрошедшее поле.
func NewDraft(toIban, amount, notes string, offRecord bool) (Draft, error) {
	if strings.TrimSpace(toIban) == "" {
		return Draft{}, &bank.ValidationError{Field: "toIban", Reason: "recipient IBAN is required"}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Draft{}, &bank.ValidationError{Field: "amount", Reason: "amount must be a finite number"}
	}

	if strings.TrimSpace(notes) == "" {
		return Draft{}, &bank.ValidationError{Field: "notes", Reason: "notes are required"}
	}

	return Draft{
		ToIban:    strings.ToUpper(strings.TrimSpace(toIban)),
		Amount:    value,
		Notes:     strings.ToUpper(strings.TrimSpace(notes)),
		OffRecord: offRecord,
	}, nil
}
