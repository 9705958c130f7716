package model

// AccountInfo описывает счет так, как его возвращает сервер
type AccountInfo struct {
	Iban        string  `json:"iban"`
	Balance     float64 `json:"balance"`
	Name        string  `json:"name"`
	OpeningDate string  `json:"openingDate"`
}

// PeriodTotals содержит агрегаты по депозитам и снятиям за фиксированное окно.
// Снятия приходят отрицательными, поэтому Net — это просто сумма.
type PeriodTotals struct {
	ID         string  `json:"_id"`
	Deposit    float64 `json:"deposit"`
	Withdrawal float64 `json:"withdrawal"`
}

func (p PeriodTotals) Net() float64 {
	return p.Deposit + p.Withdrawal
}

// AccountSummary — полный снимок счета от сервера; при каждом успешном
// запросе он целиком заменяет предыдущий, без слияния.
type AccountSummary struct {
	Account      AccountInfo   `json:"account"`
	CurrentWeek  PeriodTotals  `json:"currentWeek"`
	CurrentMonth PeriodTotals  `json:"currentMonth"`
	LastMonth    PeriodTotals  `json:"lastMonth"`
	Transactions []Transaction `json:"transactions"`
}
