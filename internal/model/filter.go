package model

import "time"

// Filter задает период и строку поиска для запросов истории и статистики.
// Границы берутся по календарным дням: клиент нормализует From к 00:00:00,
// To — к 23:59:59 перед отправкой.
type Filter struct {
	From        time.Time
	To          time.Time
	SearchTerms string
}
