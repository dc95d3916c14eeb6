package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ogwplus/go-store-backend/internal/services"
)

var titleCaser = cases.Title(language.Und)

// displayName builds a greeting-friendly name from the Telegram profile.
func displayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return ""
	}
	return titleCaser.String(name)
}

// startKeyboard is shown after /start: the web-app button plus the channel.
func startKeyboard(webAppURL, channelURL string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonWebApp("📱 Open the app", tgbotapi.WebAppInfo{URL: webAppURL})},
	}
	if channelURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Our channel", channelURL),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// mainMenuKeyboard is the full inline menu behind /menu.
func mainMenuKeyboard(webAppURL, channelURL string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonWebApp("📱 Open the app", tgbotapi.WebAppInfo{URL: webAppURL})},
	}
	second := []tgbotapi.InlineKeyboardButton{}
	if channelURL != "" {
		second = append(second, tgbotapi.NewInlineKeyboardButtonURL("📢 Our channel", channelURL))
	}
	second = append(second, tgbotapi.NewInlineKeyboardButtonData("📞 Contacts", cbContacts))
	rows = append(rows, second)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❓ Help", cbHelp),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Basket", cbBasket),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// backKeyboard carries the single button returning to the main menu.
func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbBackToMenu),
		),
	)
}

// basketKeyboard offers checkout in the web app next to the back button.
func basketKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonWebApp("💳 Checkout in the app", tgbotapi.WebAppInfo{URL: webAppURL}),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbBackToMenu),
		),
	)
}

func greetingText(name string) string {
	greeting := "👋 <b>Hi!</b>"
	if name != "" {
		greeting = fmt.Sprintf("👋 <b>Hi, %s!</b>", name)
	}
	return greeting + "\n\n" +
		"✨ Welcome to <b>OGWPLUS</b>, the official Apple hardware and repair store.\n\n" +
		"Tap the button below to open the app:"
}

func menuText() string {
	return "📋 <b>Main menu:</b>"
}

func helpText() string {
	return "❓ <b>Help:</b>\n\n" +
		"1. Tap <b>'Open the app'</b> to sign in\n" +
		"2. Inside the app you can:\n" +
		"   • Browse products 🛍️\n" +
		"   • Add items to the basket 🛒\n" +
		"   • Place orders 💳\n" +
		"   • Book a repair 🛠️\n\n" +
		"🆘 For anything else message @OGWPLUS"
}

func contactsText() string {
	return "📞 <b>Our contacts:</b>\n\n" +
		"📍 <u>Store locations:</u>\n" +
		"• Moscow, Bagrationovsky proezd 7k2, Rubin business center\n" +
		"• Moscow, Sushchevsky val 5s1, entrance 5, 2nd floor\n\n" +
		"📱 <u>Phone:</u> +7 (910) 447-79-78\n" +
		"✉️ <u>Telegram:</u> @OGWPLUS\n\n" +
		"🕒 <u>Opening hours:</u> daily 11:00-20:00"
}

func unknownCommandText() string {
	return "🤔 Unknown command. Use the menu below:"
}

func emptyBasketText() string {
	return "🛒 <b>Your basket is empty.</b>\n\nOpen the app to add something:"
}

// basketText renders a short per-line summary with a grand total.
func basketText(entries []services.BasketEntry) string {
	if len(entries) == 0 {
		return emptyBasketText()
	}
	var sb strings.Builder
	sb.WriteString("🛒 <b>Your basket:</b>\n\n")
	total := 0.0
	for _, e := range entries {
		line := e.Price * float64(e.Quantity)
		total += line
		fmt.Fprintf(&sb, "• %s ×%d: %.2f ₽\n", e.Name, e.Quantity, line)
	}
	fmt.Fprintf(&sb, "\n💰 <b>Total: %.2f ₽</b>", total)
	return sb.String()
}
