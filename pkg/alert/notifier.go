package alert

import (
	"context"
	"fmt"
	"html"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/discord"
	"github.com/nikoksr/notify/service/telegram"
)

// maxDetailLength truncates oversized detail values before delivery.
const maxDetailLength = 1000

type notifier interface {
	notify(ctx context.Context, e errorInfo) error
}

func newNotifier(cfg Config) (notifier, error) {
	env := os.Getenv("ENVIRONMENT")

	switch cfg.Provider {
	case providerDiscord:
		return newDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordChannelIDs, env)
	case providerTelegram:
		return newTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatIDs, env)
	default:
		return nil, errx.New("invalid alert provider: " + cfg.Provider)
	}
}

// markup renders text decorations for one messaging platform.
type markup struct {
	escape func(string) string
	bold   func(string) string
	italic func(string) string
	code   func(string) string
}

//nolint:gochecknoglobals // static markup definitions
var (
	discordMarkup = markup{
		escape: escapeMarkdown,
		bold:   func(s string) string { return "**" + s + "**" },
		italic: func(s string) string { return "_" + s + "_" },
		code:   func(s string) string { return "```" + s + "```" },
	}

	telegramMarkup = markup{
		escape: escapeHTML,
		bold:   func(s string) string { return "<b>" + s + "</b>" },
		italic: func(s string) string { return "<i>" + s + "</i>" },
		code:   func(s string) string { return "<code>" + s + "</code>" },
	}
)

// renderBody builds the notification text for one error occurrence.
func renderBody(e errorInfo, environment string, m markup) string {
	var b strings.Builder

	header := []struct{ label, value string }{
		{"🔍 Environment", environment},
		{"🛠️ Service", e.service},
		{"🔄 Operation", e.operation},
		{"🏷️ Code", e.code},
		{"💬 Message", e.message},
	}
	for _, f := range header {
		b.WriteString(m.bold(f.label+":") + " " + m.escape(f.value) + "\n")
	}

	b.WriteString("\n" + m.bold("📋 "+m.italic("Additional details")) + "\n")

	for _, key := range slices.Sorted(maps.Keys(e.details)) {
		value := e.details[key]
		if value == "" {
			continue
		}
		if len(value) > maxDetailLength {
			value = value[:maxDetailLength] + "..."
		}
		b.WriteString(m.italic(m.escape(key)) + ": " + m.code(value) + "\n")
	}

	if e.frequency > 0 {
		b.WriteString("\n" + m.bold("📊 Frequency:") + " ")
		b.WriteString(fmt.Sprintf("%d in last %d minutes", e.frequency, e.frequencyMinutes))
	}

	return b.String()
}

type discordNotifier struct {
	n           notify.Notifier
	environment string
}

func newDiscordNotifier(token string, channelIDs []string, environment string) (*discordNotifier, error) {
	svc := discord.New()
	if err := svc.AuthenticateWithBotToken(token); err != nil {
		return nil, errx.Wrap(err)
	}
	svc.AddReceivers(channelIDs...)

	n := notify.New()
	n.UseServices(svc)

	return &discordNotifier{n: n, environment: environment}, nil
}

func (dn *discordNotifier) notify(ctx context.Context, e errorInfo) error {
	body := renderBody(e, dn.environment, discordMarkup)
	if err := dn.n.Send(ctx, "**❗ Error Alert**\n", body); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

type telegramNotifier struct {
	n           notify.Notifier
	environment string
}

func newTelegramNotifier(token string, chatIDs []int64, environment string) (*telegramNotifier, error) {
	svc, err := telegram.New(token)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	svc.AddReceivers(chatIDs...)

	n := notify.New()
	n.UseServices(svc)

	return &telegramNotifier{n: n, environment: environment}, nil
}

func (tn *telegramNotifier) notify(ctx context.Context, e errorInfo) error {
	body := renderBody(e, tn.environment, telegramMarkup)
	if err := tn.n.Send(ctx, "<b>❗ Error Alert</b>\n", body); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

// escapeMarkdown neutralizes Discord markdown control characters.
func escapeMarkdown(in string) string {
	r := strings.NewReplacer(
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"~", "\\~",
		"|", "\\|",
	)
	return r.Replace(flattenNewlines(in))
}

// escapeHTML neutralizes HTML markup for Telegram messages.
func escapeHTML(in string) string {
	return html.EscapeString(flattenNewlines(in))
}

func flattenNewlines(in string) string {
	return strings.ReplaceAll(in, "\n", "\\n")
}
