// internal/bot/commands.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"finance-tracker/internal/currency"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

const helpText = "💰 *Finance tracker*\n\n" +
	"Commands:\n" +
	"`/expense 12.50 Food lunch` - record an expense\n" +
	"`/income 1000 Salary` - record an income\n" +
	"`/category expense 🍔 Food` - add a category\n" +
	"`/categories` - list your categories\n" +
	"`/balance` - this month's balance\n" +
	"`/currency EUR` - show or change your currency\n" +
	"`/history 2025` - monthly totals for a year"

// Commands turns chat messages into ledger operations. The Telegram user id
// is the ledger user id.
type Commands struct {
	ledger *service.Ledger
	now    func() time.Time
}

func NewCommands(ledger *service.Ledger) *Commands {
	return &Commands{ledger: ledger, now: time.Now}
}

// Handle runs one command and returns the reply text.
func (c *Commands) Handle(ctx context.Context, userID int64, text string) string {
	text = SanitizeInput(fixEncoding(text))
	cmd, args := splitCommand(text)

	var msgText string
	var err error

	switch cmd {
	case "/start", "/help":
		msgText = helpText
	case "/expense":
		msgText, err = c.addTransaction(ctx, userID, domain.Expense, args)
	case "/income":
		msgText, err = c.addTransaction(ctx, userID, domain.Income, args)
	case "/category":
		msgText, err = c.addCategory(ctx, userID, args)
	case "/categories":
		msgText, err = c.listCategories(ctx, userID)
	case "/balance":
		msgText, err = c.balance(ctx, userID)
	case "/currency":
		msgText, err = c.currency(ctx, userID, args)
	case "/history":
		msgText, err = c.history(ctx, userID, args)
	default:
		msgText = "Unknown command. Send /help"
	}

	if err != nil {
		msgText = "❌ Error: " + esc(userMessage(err))
	}
	return msgText
}

// esc escapes user supplied text for a Markdown reply.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// splitCommand separates "/cmd@BotName arg1 arg2" into "/cmd" and its args.
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	return cmd, fields[1:]
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return "category not found, add it with /category"
	case errors.Is(err, domain.ErrCategoryExists):
		return "category already exists"
	default:
		return "something went wrong, try again later"
	}
}

func (c *Commands) addTransaction(ctx context.Context, userID int64, t domain.TransactionType, args []string) (string, error) {
	if len(args) < 2 {
		return fmt.Sprintf("❌ Usage: /%s <amount> <category> [description]", t), nil
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(args[0], ",", "."))
	if err != nil {
		return fmt.Sprintf("❌ Invalid amount: %s", esc(strconv.Quote(args[0]))), nil
	}

	tx, err := c.ledger.CreateTransaction(ctx, userID, domain.NewTransaction{
		Amount:      amount,
		Date:        c.now().UTC(),
		Type:        t,
		Category:    args[1],
		Description: strings.Join(args[2:], " "),
	})
	if err != nil {
		return "", err
	}

	us, err := c.ledger.GetSettings(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Saved %s %s in *%s*", t, currency.Format(us.Currency, tx.Amount), esc(tx.Category)), nil
}

func (c *Commands) addCategory(ctx context.Context, userID int64, args []string) (string, error) {
	if len(args) < 3 {
		return "❌ Usage: /category <expense|income> <icon> <name>", nil
	}

	cat, err := c.ledger.CreateCategory(ctx, userID, domain.NewCategory{
		Type: domain.TransactionType(strings.ToLower(args[0])),
		Icon: args[1],
		Name: strings.Join(args[2:], " "),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Category %s *%s* added", esc(cat.Icon), esc(cat.Name)), nil
}

func (c *Commands) listCategories(ctx context.Context, userID int64) (string, error) {
	cats, err := c.ledger.ListCategories(ctx, userID, "")
	if err != nil {
		return "", err
	}
	if len(cats) == 0 {
		return "📭 No categories yet. Add one with /category", nil
	}

	var lines []string
	lines = append(lines, "🗂 *Categories*")
	for _, cat := range cats {
		lines = append(lines, fmt.Sprintf("- %s %s (%s)", esc(cat.Icon), esc(cat.Name), cat.Type))
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Commands) balance(ctx context.Context, userID int64) (string, error) {
	now := c.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	b, err := c.ledger.Balance(ctx, userID, from, to)
	if err != nil {
		return "", err
	}
	us, err := c.ledger.GetSettings(ctx, userID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("📊 *Balance for %s*\nIncome: %s\nExpense: %s\nNet: %s",
		from.Format("2006-01"),
		currency.Format(us.Currency, b.Income),
		currency.Format(us.Currency, b.Expense),
		currency.Format(us.Currency, b.Net())), nil
}

func (c *Commands) currency(ctx context.Context, userID int64, args []string) (string, error) {
	if len(args) == 0 {
		us, err := c.ledger.GetSettings(ctx, userID)
		if err != nil {
			return "", err
		}
		label := us.Currency
		if cur, ok := currency.Lookup(us.Currency); ok {
			label = cur.Label
		}
		return fmt.Sprintf("💱 Your currency is *%s* (%s)", us.Currency, label), nil
	}

	us, err := c.ledger.UpdateCurrency(ctx, userID, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Currency set to *%s*", us.Currency), nil
}

func (c *Commands) history(ctx context.Context, userID int64, args []string) (string, error) {
	year := c.now().UTC().Year()
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return "❌ Usage: /history [YYYY]", nil
		}
		year = y
	}

	points, err := c.ledger.History(ctx, userID, domain.TimeframeYear, domain.Period{Year: year})
	if err != nil {
		return "", err
	}
	us, err := c.ledger.GetSettings(ctx, userID)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("📈 *History for %d*", year))
	for _, p := range points {
		if p.Income.IsZero() && p.Expense.IsZero() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: +%s / -%s",
			time.Month(p.Month).String()[:3],
			currency.Format(us.Currency, p.Income),
			currency.Format(us.Currency, p.Expense)))
	}
	if len(lines) == 1 {
		return fmt.Sprintf("📭 No data for %d", year), nil
	}
	return strings.Join(lines, "\n"), nil
}

// SanitizeInput collapses every run of whitespace into a single space.
func SanitizeInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// fixEncoding repairs messages that arrive as Windows-1251 instead of UTF-8.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
