package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
	"github.com/ivanoskov/ordobank_bot/internal/model"
	"github.com/ivanoskov/ordobank_bot/internal/session"
)

// API определяет часть банковского клиента, нужную сервису запросов.
type API interface {
	AccountSummary(ctx context.Context) (*model.AccountSummary, error)
	TransactionsCustom(ctx context.Context, f model.Filter, page int) (*model.TransactionPage, error)
	TransactionsCustomStats(ctx context.Context, f model.Filter) (map[string]model.CategoryTotals, error)
	TransactionsByDay(ctx context.Context, f model.Filter) ([]model.DayAmount, error)
}

// AccountService выполняет запросы обзора и статистики счета.
type AccountService struct {
	api      API
	accounts *session.AccountState
}

func NewAccountService(api API, accounts *session.AccountState) *AccountService {
	return &AccountService{
		api:      api,
		accounts: accounts,
	}
}

// Summary запрашивает снимок счета и синхронизирует канонический IBAN
// в состоянии счета. Снимок целиком заменяет предыдущий.
func (s *AccountService) Summary(ctx context.Context) (*model.AccountSummary, error) {
	summary, err := s.api.AccountSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account summary: %w", err)
	}

	s.accounts.SetIban(summary.Account.Iban)
	log.Printf("Получен снимок счета %s, операций: %d", summary.Account.Iban, len(summary.Transactions))
	return summary, nil
}

// CategoryTotals возвращает агрегаты по категориям, отсортированные по
// имени: порядок ключей от сервера недетерминирован.
func (s *AccountService) CategoryTotals(ctx context.Context, f model.Filter) ([]model.CategoryStat, error) {
	totals, err := s.api.TransactionsCustomStats(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}

	stats := make([]model.CategoryStat, 0, len(totals))
	for category, t := range totals {
		stats = append(stats, model.CategoryStat{
			Category:    category,
			Deposits:    t.Deposits,
			Withdrawals: t.Withdrawals,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

// DailySeries запрашивает дневные корзины и уплотняет их до ровно одной
// точки на каждый календарный день окна; дни без данных получают 0.
// Окно длиннее одного месяца отклоняется до любого сетевого вызова.
func (s *AccountService) DailySeries(ctx context.Context, f model.Filter) ([]model.DayPoint, error) {
	from := dayOf(f.From)
	to := dayOf(f.To)

	if monthsBetween(from, to) > 1 {
		return nil, &bank.ValidationError{Field: "toDate", Reason: "period must not exceed one month"}
	}

	buckets, err := s.api.TransactionsByDay(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily buckets: %w", err)
	}

	byDay := make(map[string]float64, len(buckets))
	for _, b := range buckets {
		byDay[b.Day] = b.NetAmount
	}

	points := make([]model.DayPoint, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		points = append(points, model.DayPoint{
			DayOfMonth: d.Day(),
			Amount:     byDay[d.Format("2006-01-02")],
		})
	}
	return points, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthsBetween считает полные календарные месяцы между началами дней.
func monthsBetween(from, to time.Time) int {
	months := 0
	for !from.AddDate(0, months+1, 0).After(to) {
		months++
	}
	return months
}
