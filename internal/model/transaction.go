package model

import "time"

type Transaction struct {
	ID          string    `json:"_id"`
	Iban        string    `json:"iban"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// TransactionPage — одна страница результатов постраничного запроса.
// Total — общее число операций по фильтру, оно авторитетно для
// кнопки «загрузить еще».
type TransactionPage struct {
	Results []Transaction `json:"results"`
	Total   int           `json:"total"`
}
