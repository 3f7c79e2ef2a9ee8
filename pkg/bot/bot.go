package bot

import (
	"context"
	"fmt"
	"time"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/service"

	tele "gopkg.in/telebot.v3"
)

// Bot exposes the filtered lists to the configured admin over Telegram.
type Bot struct {
	Bot *tele.Bot
	Log logger.ILogger
	Cfg *config.Config
	Svc service.IServiceManager
}

const (
	btnManufacturers = "🏭 Manufacturers"
	btnCars          = "🚗 Cars"
	btnDrivers       = "👤 Drivers"
	btnStats         = "📊 Statistics"
)

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Error("telegram handler failed", logger.Error(err))
		},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot: b,
		Log: log,
		Cfg: cfg,
		Svc: svc,
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 admin bot started", logger.String("username", b.Bot.Me.Username))
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

func (b *Bot) registerHandlers() {
	b.Bot.Use(b.adminOnly)

	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle("/manufacturers", b.handleManufacturers)
	b.Bot.Handle("/cars", b.handleCars)
	b.Bot.Handle("/drivers", b.handleDrivers)
	b.Bot.Handle("/stats", b.handleStats)

	b.Bot.Handle(btnManufacturers, b.handleManufacturers)
	b.Bot.Handle(btnCars, b.handleCars)
	b.Bot.Handle(btnDrivers, b.handleDrivers)
	b.Bot.Handle(btnStats, b.handleStats)

	b.Bot.Handle("\f"+pageUnique, b.handlePage)
}

// adminOnly drops every update that does not come from the configured admin.
func (b *Bot) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || b.Cfg.AdminID == 0 || sender.ID != b.Cfg.AdminID {
			if sender != nil {
				b.Log.Warning("ignored telegram update from non-admin", logger.Int64("telegram_id", sender.ID))
			}
			return nil
		}
		return next(c)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnManufacturers), menu.Text(btnCars)),
		menu.Row(menu.Text(btnDrivers), menu.Text(btnStats)),
	)
	return c.Send("👋 Fleet admin.\n\nSearch with /cars <model> [page], /drivers <username> [page] or /manufacturers <name> [page].", menu)
}

func (b *Bot) handleManufacturers(c tele.Context) error {
	query, page := parseListArgs(c.Args())
	return b.sendList(c, kindManufacturers, query, page, false)
}

func (b *Bot) handleCars(c tele.Context) error {
	query, page := parseListArgs(c.Args())
	return b.sendList(c, kindCars, query, page, false)
}

func (b *Bot) handleDrivers(c tele.Context) error {
	query, page := parseListArgs(c.Args())
	return b.sendList(c, kindDrivers, query, page, false)
}

// handlePage serves the prev/next buttons under a list message.
func (b *Bot) handlePage(c tele.Context) error {
	kind, query, page, ok := parsePageData(c.Callback().Data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown page"})
	}
	if err := b.sendList(c, kind, query, page, true); err != nil {
		return err
	}
	return c.Respond()
}

func (b *Bot) handleStats(c tele.Context) error {
	ctx := context.Background()
	manufacturers, err := b.Svc.Manufacturer().List(ctx, "", 1)
	if err != nil {
		return err
	}
	cars, err := b.Svc.Car().List(ctx, "", 1)
	if err != nil {
		return err
	}
	drivers, err := b.Svc.Driver().List(ctx, "", 1)
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf("📊 STATISTICS\n\nManufacturers: %d\nCars: %d\nDrivers: %d",
		manufacturers.Total, cars.Total, drivers.Total))
}

func (b *Bot) sendList(c tele.Context, kind, query string, page int, edit bool) error {
	ctx := context.Background()

	var (
		text  string
		pages int
		err   error
	)
	switch kind {
	case kindManufacturers:
		text, pages, err = renderList(ctx, b.Svc.Manufacturer().List, query, page, manufacturerListFormat)
	case kindCars:
		text, pages, err = renderList(ctx, b.Svc.Car().List, query, page, carListFormat)
	case kindDrivers:
		text, pages, err = renderList(ctx, b.Svc.Driver().List, query, page, driverListFormat)
	default:
		return fmt.Errorf("unknown list kind %q", kind)
	}
	if err != nil {
		b.Log.Error("failed to list "+kind, logger.Error(err))
		return c.Send("⚠️ Something went wrong. Please try again later.")
	}

	opts := []interface{}{}
	if menu := pageMarkup(kind, query, page, pages); menu != nil {
		opts = append(opts, menu)
	}
	if edit {
		return c.Edit(text, opts...)
	}
	return c.Send(text, opts...)
}
