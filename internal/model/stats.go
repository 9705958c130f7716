package model

// CategoryTotals — агрегаты по одной категории, как их возвращает
// /transactionsCustomStats.
type CategoryTotals struct {
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
}

// CategoryStat — та же статистика вместе с именем категории,
// в отсортированном для вывода виде.
type CategoryStat struct {
	Category    string
	Deposits    float64
	Withdrawals float64
}

// DayAmount — разреженная дневная корзина от /transactionsByDay.
// Day имеет формат YYYY-MM-DD.
type DayAmount struct {
	Day       string  `json:"_id"`
	NetAmount float64 `json:"netAmount"`
}

// DayPoint — точка уплотненного дневного ряда: ровно одна на каждый
// календарный день запрошенного окна.
type DayPoint struct {
	DayOfMonth int
	Amount     float64
}
