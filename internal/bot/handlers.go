package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/ordobank_bot/internal/model"
	"github.com/ivanoskov/ordobank_bot/internal/service"
	"github.com/ivanoskov/ordobank_bot/internal/transfer"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "login":
		b.handleLogin(message)
	case "logout":
		b.handleLogout(message)
	case "balance":
		b.handleBalance(message)
	case "transfer":
		b.handleTransfer(message)
	case "pay":
		b.handlePay(message)
	case "history":
		b.handleHistory(message)
	case "stats":
		b.handleStats(message)
	case "myinfo":
		b.handleMyInfo(message)
	}

	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	if b.session.Token() == "" {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"Добро пожаловать в Ordobank! 🏦\n\n"+
				"Чтобы начать работу, войдите в аккаунт: /login")
		b.api.Send(msg)
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Добро пожаловать в Ordobank! 🏦\n\n"+
			"Вот что я умею:\n"+
			"• Показывать баланс и выписку — /balance, /history\n"+
			"• Переводить деньги — /transfer, /pay\n"+
			"• Строить статистику — /stats\n"+
			"• Показывать реквизиты для получения денег — /myinfo\n\n"+
			"Выберите действие:")
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleLogin(message *tgbotapi.Message) {
	b.states[message.Chat.ID] = &chatState{AwaitingAction: "login"}
	msg := tgbotapi.NewMessage(message.Chat.ID, "Введите имя и пароль через пробел:")
	b.api.Send(msg)
}

func (b *Bot) handleLogout(message *tgbotapi.Message) {
	b.session.SetToken("")
	delete(b.states, message.Chat.ID)
	delete(b.flows, message.Chat.ID)
	delete(b.feeds, message.Chat.ID)
	msg := tgbotapi.NewMessage(message.Chat.ID, "Вы вышли из аккаунта")
	b.api.Send(msg)
}

// handleBalance — потребитель обзора счета: перезапрашивает снимок и
// потребляет поднятый флаг принудительного обновления.
func (b *Bot) handleBalance(message *tgbotapi.Message) {
	if b.accounts.RefreshAnyway() {
		// Ровно один сброс на одно поднятие флага
		b.accounts.SetRefreshAnyway(false)
	}

	summary, err := b.service.Summary(context.Background())
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}

	text := fmt.Sprintf(
		"💳 %s\nБаланс: %.2f\n\n"+
			"Неделя: +%.2f / %.2f / итог %.2f\n"+
			"Месяц: +%.2f / %.2f / итог %.2f\n"+
			"Прошлый месяц: +%.2f / %.2f / итог %.2f",
		summary.Account.Iban,
		summary.Account.Balance,
		summary.CurrentWeek.Deposit, summary.CurrentWeek.Withdrawal, summary.CurrentWeek.Net(),
		summary.CurrentMonth.Deposit, summary.CurrentMonth.Withdrawal, summary.CurrentMonth.Net(),
		summary.LastMonth.Deposit, summary.LastMonth.Withdrawal, summary.LastMonth.Net(),
	)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.api.Send(msg)

	if len(summary.Transactions) > 0 {
		recent := summary.Transactions
		if len(recent) > 5 {
			recent = recent[:5]
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, "Последние операции:\n\n"+renderTransactions(recent))
		if kb := b.getRepeatKeyboard(recent); len(kb.InlineKeyboard) > 0 {
			msg.ReplyMarkup = kb
		}
		b.api.Send(msg)
	}

	bars, err := b.charts.GenerateSummaryBars(summary)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Не удалось построить график")
		return
	}
	b.sendPhoto(message.Chat.ID, "summary.png", bars)
}

// handleTransfer — ручная форма перевода: /transfer IBAN СУММА НАЗНАЧЕНИЕ,
// флаг -off помечает перевод как внеучетный.
func (b *Bot) handleTransfer(message *tgbotapi.Message) {
	fields := strings.Fields(message.CommandArguments())

	offRecord := false
	args := fields[:0]
	for _, f := range fields {
		if f == "-off" {
			offRecord = true
			continue
		}
		args = append(args, f)
	}

	if len(args) < 3 {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"Формат: /transfer <IBAN> <сумма> <назначение>\n"+
				"Добавьте -off для внеучетного перевода.\n\n"+
				"Можно также отправить текст QR-кода получателя (IBAN|...).")
		b.api.Send(msg)
		return
	}

	draft, err := transfer.NewDraft(args[0], args[1], strings.Join(args[2:], " "), offRecord)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}

	b.startConfirmation(message.Chat.ID, draft)
}

// startConfirmation - единая точка подтверждения для всех трех способов
// создать перевод: ручной формы, QR-кода и предзаполненного повтора.
// Кнопка подтверждения появляется только после успешного подтверждения
// имени получателя.
func (b *Bot) startConfirmation(chatID int64, draft transfer.Draft) {
	flow := transfer.NewFlow(b.bank, b.accounts, draft)

	name, err := flow.ResolveRecipient(context.Background())
	if err != nil {
		b.sendErrorMessage(chatID, errorText(err))
		return
	}

	b.flows[chatID] = flow

	offRecord := "Нет"
	if draft.OffRecord {
		offRecord = "Да"
	}
	text := fmt.Sprintf(
		"Подтвердите перевод:\n\n"+
			"Получатель: %s\n"+
			"Имя получателя: %s\n"+
			"Сумма: %.2f\n"+
			"Назначение: %s\n"+
			"Вне учета: %s",
		draft.ToIban, name, draft.Amount, draft.Notes, offRecord)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.getConfirmKeyboard()
	b.api.Send(msg)
}

// handlePay — быстрый платеж на настроенный счет: /pay <сумма> <тег> <назначение>.
func (b *Bot) handlePay(message *tgbotapi.Message) {
	if b.quickPayIban == "" {
		b.sendErrorMessage(message.Chat.ID, "Счет быстрых платежей не настроен")
		return
	}

	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 3 {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"Формат: /pay <сумма> <тег> <назначение>\n"+
				"Теги: food, transport, bills, health, leisure, savings, others")
		b.api.Send(msg)
		return
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || amount <= 0 {
		b.sendErrorMessage(message.Chat.ID, "Сумма должна быть числом больше нуля")
		return
	}

	notes := strings.Join(fields[2:], " ")
	if tag := fields[1]; tag != "others" {
		notes = "**" + tag + "** " + notes
	}

	draft, err := transfer.NewDraft(b.quickPayIban, fields[0], notes, false)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}

	// Быстрый платеж идет через тот же протокол: сначала имя, затем commit
	flow := transfer.NewFlow(b.bank, b.accounts, draft)
	if _, err := flow.ResolveRecipient(context.Background()); err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}
	if err := flow.Commit(context.Background()); err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Платеж выполнен ✅")
	b.api.Send(msg)
}

func (b *Bot) handleHistory(message *tgbotapi.Message) {
	filter := parseFilter(message.CommandArguments())

	feed := service.NewTransactionFeed(b.bank, filter)
	if err := feed.FetchPage(context.Background(), false); err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}
	b.feeds[message.Chat.ID] = feed

	if len(feed.Transactions()) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "За выбранный период операций нет")
		b.api.Send(msg)
		return
	}

	text := renderTransactions(feed.Transactions()) +
		fmt.Sprintf("\nВсего операций: %d", feed.Total())
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	if feed.HasMore() {
		msg.ReplyMarkup = b.getLoadMoreKeyboard()
	}
	b.api.Send(msg)
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	filter := parseFilter(message.CommandArguments())

	stats, err := b.service.CategoryTotals(context.Background(), filter)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}

	if len(stats) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "За выбранный период статистики нет")
		b.api.Send(msg)
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика по категориям:\n")
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("\n%s\nПоступления: %.2f\nСнятия: %.2f\n",
			strings.ToUpper(s.Category), s.Deposits, s.Withdrawals))
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, sb.String()))

	pie, err := b.charts.GenerateCategoryPie(stats)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Не удалось построить диаграмму")
	} else {
		b.sendPhoto(message.Chat.ID, "categories.png", pie)
	}

	series, err := b.service.DailySeries(context.Background(), filter)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, errorText(err))
		return
	}
	line, err := b.charts.GenerateDailySeries(series)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Не удалось построить график")
		return
	}
	b.sendPhoto(message.Chat.ID, "daily.png", line)
}

func (b *Bot) handleMyInfo(message *tgbotapi.Message) {
	iban := b.accounts.Iban()
	if iban == "" {
		b.sendErrorMessage(message.Chat.ID, "Сначала запросите баланс: /balance")
		return
	}

	amount := strings.TrimSpace(message.CommandArguments())
	payload := fmt.Sprintf("IBAN|%s|VERTEX_VNVXPA0|%s", iban, amount)

	text := fmt.Sprintf(
		"Ваши реквизиты:\n\n%s\nVertex Banking Corporation\nSWIFT: VNVXPA0\n\n"+
			"Код для получения денег:\n%s",
		iban, payload)
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, text))

	qr, err := b.charts.GenerateQR(payload)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Не удалось построить QR-код")
		return
	}
	b.sendPhoto(message.Chat.ID, "myinfo.png", qr)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	switch {
	case callback.Data == "transfer_confirm":
		flow, exists := b.flows[chatID]
		if !exists {
			b.sendErrorMessage(chatID, "Нет перевода, ожидающего подтверждения")
			break
		}
		delete(b.flows, chatID)
		if err := flow.Commit(context.Background()); err != nil {
			b.sendErrorMessage(chatID, errorText(err))
			break
		}
		b.api.Send(tgbotapi.NewMessage(chatID, "Перевод выполнен ✅"))

	case callback.Data == "transfer_cancel":
		delete(b.flows, chatID)
		b.api.Send(tgbotapi.NewMessage(chatID, "Перевод отменен"))

	case callback.Data == "history_more":
		feed, exists := b.feeds[chatID]
		if !exists {
			b.sendErrorMessage(chatID, "Сначала запросите историю: /history")
			break
		}
		before := len(feed.Transactions())
		if err := feed.FetchPage(context.Background(), true); err != nil {
			b.sendErrorMessage(chatID, errorText(err))
			break
		}
		loaded := feed.Transactions()[before:]
		text := renderTransactions(loaded) +
			fmt.Sprintf("\nПоказано %d из %d", len(feed.Transactions()), feed.Total())
		msg := tgbotapi.NewMessage(chatID, text)
		if feed.HasMore() {
			msg.ReplyMarkup = b.getLoadMoreKeyboard()
		}
		b.api.Send(msg)

	case strings.HasPrefix(callback.Data, "repeat_"):
		// Предзаполненный повтор: счет уже известен, остается сумма и назначение
		iban := strings.TrimPrefix(callback.Data, "repeat_")
		b.states[chatID] = &chatState{AwaitingAction: "transfer_details", Iban: iban}
		b.api.Send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Перевод на счет %s.\nВведите сумму и назначение в формате:\n1000 ОБЕД", iban)))
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	callbackResponse := tgbotapi.NewCallback(callback.ID, "")
	b.api.Request(callbackResponse)

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	state, exists := b.states[chatID]
	if !exists {
		// QR-код получателя можно прислать обычным сообщением
		if iban, amount, ok := parseQRPayload(message.Text); ok {
			b.startFromQR(chatID, iban, amount)
			return nil
		}

		switch message.Text {
		case "💰 Баланс":
			b.handleBalance(message)
		case "📄 История":
			b.handleHistory(message)
		case "📊 Статистика":
			b.handleStats(message)
		case "💸 Перевод":
			b.handleTransfer(message)
		default:
			msg := tgbotapi.NewMessage(chatID, "Выберите действие:")
			msg.ReplyMarkup = b.getMainKeyboard()
			b.api.Send(msg)
		}
		return nil
	}

	switch state.AwaitingAction {
	case "login":
		parts := strings.Fields(message.Text)
		if len(parts) != 2 {
			b.sendErrorMessage(chatID, "Введите имя и пароль через пробел")
			return nil
		}
		token, err := b.bank.Login(context.Background(), parts[0], parts[1])
		if err != nil {
			b.sendErrorMessage(chatID, errorText(err))
			return nil
		}
		b.session.SetToken(token)
		delete(b.states, chatID)
		msg := tgbotapi.NewMessage(chatID, "Вы вошли в аккаунт ✅")
		msg.ReplyMarkup = b.getMainKeyboard()
		b.api.Send(msg)

	case "transfer_details":
		parts := strings.SplitN(message.Text, " ", 2)
		if len(parts) != 2 {
			b.sendErrorMessage(chatID, "Неверный формат. Используйте: <сумма> <назначение>")
			return nil
		}
		delete(b.states, chatID)
		draft, err := transfer.NewDraft(state.Iban, parts[0], parts[1], state.OffRecord)
		if err != nil {
			b.sendErrorMessage(chatID, errorText(err))
			return nil
		}
		b.startConfirmation(chatID, draft)

	case "transfer_notes":
		delete(b.states, chatID)
		draft, err := transfer.NewDraft(state.Iban, state.Amount, message.Text, state.OffRecord)
		if err != nil {
			b.sendErrorMessage(chatID, errorText(err))
			return nil
		}
		b.startConfirmation(chatID, draft)
	}

	return nil
}

// startFromQR продолжает перевод по разобранному QR-коду: при известной
// сумме не хватает только назначения, иначе — суммы и назначения.
func (b *Bot) startFromQR(chatID int64, iban, amount string) {
	if amount != "" && amount != "0" {
		b.states[chatID] = &chatState{AwaitingAction: "transfer_notes", Iban: iban, Amount: amount}
		b.api.Send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Счет %s, сумма %s.\nВведите назначение платежа:", iban, amount)))
		return
	}

	b.states[chatID] = &chatState{AwaitingAction: "transfer_details", Iban: iban}
	b.api.Send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("Счет %s.\nВведите сумму и назначение в формате:\n1000 ОБЕД", iban)))
}

func renderTransactions(transactions []model.Transaction) string {
	var sb strings.Builder
	for _, t := range transactions {
		sb.WriteString(fmt.Sprintf("%+.2f — %s\n%s\n\n",
			t.Amount,
			strings.ToUpper(t.Description),
			t.Date.Format("02/01/2006 15:04:05")))
	}
	return sb.String()
}
