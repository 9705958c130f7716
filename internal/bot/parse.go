package bot

import (
	"strings"
	"time"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

const dateLayout = "02/01/2006"

// parseFilter разбирает аргументы вида "[ДД/ММ/ГГГГ ДД/ММ/ГГГГ] [слова поиска]".
// Без дат берется окно от месяца назад до сегодняшнего дня.
func parseFilter(args string) model.Filter {
	now := time.Now()
	filter := model.Filter{
		From: now.AddDate(0, -1, 0),
		To:   now,
	}

	fields := strings.Fields(args)
	if len(fields) >= 2 {
		from, errFrom := time.Parse(dateLayout, fields[0])
		to, errTo := time.Parse(dateLayout, fields[1])
		if errFrom == nil && errTo == nil {
			filter.From = from
			filter.To = to
			fields = fields[2:]
		}
	}

	filter.SearchTerms = strings.Join(fields, " ")
	return filter
}

// parseQRPayload разбирает содержимое QR-кода счета:
// IBAN|<iban>|<банк>|<сумма>. Сумма присутствует только в полной форме
// из четырех частей.
func parseQRPayload(code string) (iban, amount string, ok bool) {
	parts := strings.Split(code, "|")
	if len(parts) < 2 || parts[0] != "IBAN" || parts[1] == "" {
		return "", "", false
	}
	iban = parts[1]
	if len(parts) == 4 {
		amount = parts[3]
	}
	return iban, amount, true
}
