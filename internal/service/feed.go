package service

import (
	"context"
	"fmt"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

// TransactionFeed — растущий список истории операций по одному фильтру.
// Новый запрос заменяет список результатом первой страницы и ставит
// счетчик следующей страницы на 2; догрузка добавляет следующую страницу
// в конец. Total от сервера авторитетен для кнопки «загрузить еще».
type TransactionFeed struct {
	api    API
	filter model.Filter

	items    []model.Transaction
	total    int
	nextPage int
}

func NewTransactionFeed(api API, filter model.Filter) *TransactionFeed {
	return &TransactionFeed{
		api:      api,
		filter:   filter,
		nextPage: 1,
	}
}

// FetchPage загружает очередную страницу. При appendPage=false это всегда
// новый запрос: список сбрасывается к результату первой страницы
// независимо от накопленного состояния. Ошибка не меняет состояние ленты.
func (f *TransactionFeed) FetchPage(ctx context.Context, appendPage bool) error {
	page := 1
	if appendPage {
		page = f.nextPage
	}

	result, err := f.api.TransactionsCustom(ctx, f.filter, page)
	if err != nil {
		return fmt.Errorf("failed to get transactions page %d: %w", page, err)
	}

	if appendPage {
		f.items = append(f.items, result.Results...)
		f.nextPage++
	} else {
		f.items = result.Results
		f.nextPage = 2
	}
	f.total = result.Total
	return nil
}

func (f *TransactionFeed) Transactions() []model.Transaction {
	return f.items
}

func (f *TransactionFeed) Total() int {
	return f.total
}

// HasMore сообщает, остались ли на сервере не показанные операции.
func (f *TransactionFeed) HasMore() bool {
	return len(f.items) < f.total
}
