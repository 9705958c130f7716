package bot

import (
	"testing"
	"time"
)

func TestParseFilterExplicitDates(t *testing.T) {
	filter := parseFilter("01/03/2026 15/03/2026 lunch with team")

	wantFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !filter.From.Equal(wantFrom) {
		t.Errorf("From = %v, ожидалось %v", filter.From, wantFrom)
	}
	if !filter.To.Equal(wantTo) {
		t.Errorf("To = %v, ожидалось %v", filter.To, wantTo)
	}
	if filter.SearchTerms != "lunch with team" {
		t.Errorf("SearchTerms = %q, ожидалось %q", filter.SearchTerms, "lunch with team")
	}
}

func TestParseFilterDefaultWindow(t *testing.T) {
	before := time.Now()
	filter := parseFilter("lunch")
	after := time.Now()

	if filter.To.Before(before) || filter.To.After(after) {
		t.Errorf("To = %v, ожидался текущий момент", filter.To)
	}
	wantFrom := filter.To.AddDate(0, -1, 0)
	if !filter.From.Equal(wantFrom) {
		t.Errorf("From = %v, ожидался месяц до To", filter.From)
	}
	if filter.SearchTerms != "lunch" {
		t.Errorf("SearchTerms = %q, ожидалось %q", filter.SearchTerms, "lunch")
	}
}

func TestParseFilterEmpty(t *testing.T) {
	filter := parseFilter("")

	if filter.SearchTerms != "" {
		t.Errorf("SearchTerms = %q, ожидалась пустая строка", filter.SearchTerms)
	}
	if !filter.From.Before(filter.To) {
		t.Error("окно по умолчанию должно идти из прошлого в настоящее")
	}
}

func TestParseFilterBadDatesTreatedAsSearch(t *testing.T) {
	filter := parseFilter("2026-03-01 2026-03-15 lunch")

	if filter.SearchTerms != "2026-03-01 2026-03-15 lunch" {
		t.Errorf("SearchTerms = %q, нераспознанные даты остаются словами поиска", filter.SearchTerms)
	}
}

func TestParseQRPayload(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantIban   string
		wantAmount string
		wantOK     bool
	}{
		{
			name:       "полная форма с суммой",
			code:       "IBAN|VN480630512753392800|VERTEX_VNVXPA0|25.00",
			wantIban:   "VN480630512753392800",
			wantAmount: "25.00",
			wantOK:     true,
		},
		{
			name:     "форма без суммы",
			code:     "IBAN|VN480630512753392800|VERTEX_VNVXPA0",
			wantIban: "VN480630512753392800",
			wantOK:   true,
		},
		{
			name:     "только префикс и счет",
			code:     "IBAN|VN480630512753392800",
			wantIban: "VN480630512753392800",
			wantOK:   true,
		},
		{
			name:   "чужой префикс",
			code:   "CARD|1234",
			wantOK: false,
		},
		{
			name:   "пустой счет",
			code:   "IBAN||X|10",
			wantOK: false,
		},
		{
			name:   "обычный текст",
			code:   "привет",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iban, amount, ok := parseQRPayload(tt.code)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, ожидалось %v", ok, tt.wantOK)
			}
			if iban != tt.wantIban {
				t.Errorf("iban = %q, ожидалось %q", iban, tt.wantIban)
			}
			if amount != tt.wantAmount {
				t.Errorf("amount = %q, ожидалось %q", amount, tt.wantAmount)
			}
		})
	}
}
