package main

import (
	"context"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
	"github.com/ivanoskov/ordobank_bot/internal/bot"
	"github.com/ivanoskov/ordobank_bot/internal/config"
	"github.com/ivanoskov/ordobank_bot/internal/service"
	"github.com/ivanoskov/ordobank_bot/internal/session"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	// Сессия живет между вызовами только через файловое хранилище
	sess := session.NewStore(session.NewFileStorage(cfg.TokenFile))
	sess.LoadPersisted()

	accounts := session.NewAccountState()

	client := bank.NewClient(cfg.BankBaseURL, cfg.RequestTimeout, sess)
	svc := service.NewAccountService(client, accounts)

	bot, err := bot.NewBot(cfg.TelegramToken, cfg.QuickPayIban, client, svc, sess, accounts)
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := bot.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
