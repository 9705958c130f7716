package main

import (
	"log"

	"github.com/ivanoskov/ordobank_bot/internal/bank"
	"github.com/ivanoskov/ordobank_bot/internal/bot"
	"github.com/ivanoskov/ordobank_bot/internal/config"
	"github.com/ivanoskov/ordobank_bot/internal/service"
	"github.com/ivanoskov/ordobank_bot/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	sess := session.NewStore(session.NewFileStorage(cfg.TokenFile))
	sess.LoadPersisted()

	accounts := session.NewAccountState()

	client := bank.NewClient(cfg.BankBaseURL, cfg.RequestTimeout, sess)
	svc := service.NewAccountService(client, accounts)

	bot, err := bot.NewBot(cfg.TelegramToken, cfg.QuickPayIban, client, svc, sess, accounts)
	if err != nil {
		log.Fatal(err)
	}

	if err := bot.Start(); err != nil {
		log.Fatal(err)
	}
}
