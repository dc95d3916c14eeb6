// Package bot implements the Telegram front door for the store. It serves
// the command menu, inline navigation, and the web-app entry button, and it
// registers a user profile on first contact so the storefront API can issue
// a token for the same Telegram identity.
package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/ogwplus/go-store-backend/internal/config"
	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/services"
)

// Callback payloads used by the inline menu.
const (
	cbContacts   = "contacts"
	cbHelp       = "help"
	cbBasket     = "basket"
	cbBackToMenu = "back_to_menu"
)

// updateTimeoutSeconds is the long-polling timeout passed to Telegram.
const updateTimeoutSeconds = 30

// ProfileService registers user profiles keyed by Telegram id.
type ProfileService interface {
	Create(ctx context.Context, userID int64, firstName, lastName, username string) (*domain.User, error)
}

// BasketReader serves the basket summary shown by the inline menu.
type BasketReader interface {
	Get(ctx context.Context, userID int64) ([]services.BasketEntry, error)
}

// Bot wraps the Telegram client together with the application services it
// needs. Construct with New and drive with Run.
type Bot struct {
	api      *tgbotapi.BotAPI
	log      zerolog.Logger
	cfg      config.BotConfig
	profiles ProfileService
	baskets  BasketReader
}

// New authenticates against the Telegram Bot API and returns a ready Bot.
func New(cfg config.BotConfig, log zerolog.Logger, profiles ProfileService, baskets BasketReader) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot: token is required")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("bot: authenticate: %w", err)
	}
	api.Debug = cfg.Debug

	return &Bot{
		api:      api,
		log:      log.With().Str("component", "bot").Logger(),
		cfg:      cfg,
		profiles: profiles,
		baskets:  baskets,
	}, nil
}

// Run registers the command menu and consumes updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.setCommands(); err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// setCommands publishes the persistent command menu.
func (b *Bot) setCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "🚀 Get started"},
		tgbotapi.BotCommand{Command: "menu", Description: "📱 Main menu"},
		tgbotapi.BotCommand{Command: "help", Description: "❓ Help"},
		tgbotapi.BotCommand{Command: "contacts", Description: "📞 Contacts"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		return fmt.Errorf("bot: set commands: %w", err)
	}
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "menu":
		b.sendMenu(msg.Chat.ID)
	case "help":
		b.send(msg.Chat.ID, helpText(), backKeyboard())
	case "contacts":
		b.send(msg.Chat.ID, contactsText(), backKeyboard())
	default:
		b.send(msg.Chat.ID, unknownCommandText(), mainMenuKeyboard(b.cfg.WebAppURL, b.cfg.ChannelURL))
	}
}

// handleStart greets the user and registers a profile for the Telegram
// identity so the web app can obtain a token later. An already existing
// profile is not an error here.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	from := msg.From
	if from != nil && b.profiles != nil {
		_, err := b.profiles.Create(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
		if err != nil && !errors.Is(err, services.ErrUserExists) {
			b.log.Error().Err(err).Int64("user_id", from.ID).Msg("profile registration failed")
		}
	}

	name := ""
	if from != nil {
		name = displayName(from.FirstName, from.LastName)
	}
	b.send(msg.Chat.ID, greetingText(name), startKeyboard(b.cfg.WebAppURL, b.cfg.ChannelURL))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.log.Debug().Err(err).Msg("callback ack failed")
		}
	}()

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch cb.Data {
	case cbContacts:
		b.edit(chatID, messageID, contactsText(), backKeyboard())
	case cbHelp:
		b.edit(chatID, messageID, helpText(), backKeyboard())
	case cbBasket:
		b.edit(chatID, messageID, b.basketSummary(ctx, cb.From.ID), basketKeyboard(b.cfg.WebAppURL))
	case cbBackToMenu:
		b.edit(chatID, messageID, menuText(), mainMenuKeyboard(b.cfg.WebAppURL, b.cfg.ChannelURL))
	}
}

// basketSummary renders the caller's basket, falling back to a generic
// prompt when the lookup fails.
func (b *Bot) basketSummary(ctx context.Context, userID int64) string {
	if b.baskets == nil {
		return emptyBasketText()
	}
	entries, err := b.baskets.Get(ctx, userID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", userID).Msg("basket lookup failed")
		return emptyBasketText()
	}
	return basketText(entries)
}

func (b *Bot) sendMenu(chatID int64) {
	b.send(chatID, menuText(), mainMenuKeyboard(b.cfg.WebAppURL, b.cfg.ChannelURL))
}

func (b *Bot) send(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("edit failed")
	}
}
