package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
	"github.com/ivanoskov/ordobank_bot/internal/charts"
	"github.com/ivanoskov/ordobank_bot/internal/service"
	"github.com/ivanoskov/ordobank_bot/internal/session"
	"github.com/ivanoskov/ordobank_bot/internal/transfer"
)

// chatState хранит текущее состояние диалога с пользователем
type chatState struct {
	AwaitingAction string // "login", "transfer_details" или "transfer_notes"
	Iban           string
	Amount         string
	OffRecord      bool
}

type Bot struct {
	api          *tgbotapi.BotAPI
	bank         *bank.Client
	service      *service.AccountService
	charts       *charts.ChartGenerator
	session      *session.Store
	accounts     *session.AccountState
	quickPayIban string

	states map[int64]*chatState               // состояния диалогов по ID чата
	flows  map[int64]*transfer.Flow           // переводы, ожидающие подтверждения
	feeds  map[int64]*service.TransactionFeed // открытые ленты истории
}

func NewBot(token, quickPayIban string, client *bank.Client, svc *service.AccountService, sess *session.Store, accounts *session.AccountState) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:          api,
		bank:         client,
		service:      svc,
		charts:       charts.NewChartGenerator(),
		session:      sess,
		accounts:     accounts,
		quickPayIban: quickPayIban,
		states:       make(map[int64]*chatState),
		flows:        make(map[int64]*transfer.Flow),
		feeds:        make(map[int64]*service.TransactionFeed),
	}, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			log.Printf("Ошибка обработки обновления: %v", err)
		}
	}

	return nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}

func (b *Bot) sendPhoto(chatID int64, name string, data []byte) {
	if len(data) == 0 {
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	b.api.Send(photo)
}

// errorText переводит типизированные ошибки ядра в сообщение пользователю.
// Ни одна ошибка не уходит выше обработчика, вызвавшего операцию.
func errorText(err error) string {
	var validationErr *bank.ValidationError
	var authErr *bank.AuthError
	var rejectedErr *bank.TransferRejectedError
	var networkErr *bank.NetworkError

	switch {
	case errors.As(err, &validationErr):
		switch validationErr.Field {
		case "toIban":
			return "Укажите счет получателя"
		case "amount":
			return "Сумма должна быть числом"
		case "notes":
			return "Заполните назначение платежа"
		case "toDate":
			return "Выберите период не длиннее одного месяца"
		default:
			return fmt.Sprintf("Проверьте поле %s", validationErr.Field)
		}
	case errors.As(err, &authErr):
		return "Неверные учетные данные или сессия истекла. Выполните /login"
	case errors.As(err, &rejectedErr):
		if rejectedErr.Reason == "recipient name not found" {
			return "Имя получателя не найдено"
		}
		return "Перевод отклонен"
	case errors.As(err, &networkErr):
		return "Ошибка сети, попробуйте позже"
	default:
		return "Что-то пошло не так, попробуйте позже"
	}
}
