package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💰 Баланс"),
			tgbotapi.NewKeyboardButton("💸 Перевод"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📄 История"),
			tgbotapi.NewKeyboardButton("📊 Статистика"),
		),
	)
}

func (b *Bot) getConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "transfer_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "transfer_cancel"),
		),
	)
}

func (b *Bot) getLoadMoreKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Загрузить еще", "history_more"),
		),
	)
}

// getRepeatKeyboard строит по кнопке на каждую исходящую операцию,
// чтобы повторить перевод тому же получателю.
func (b *Bot) getRepeatKeyboard(transactions []model.Transaction) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range transactions {
		if t.Amount >= 0 || t.Iban == "" {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔁 %s", t.Iban),
				"repeat_"+t.Iban,
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
