// Package chatbot maps free-form text to banking intents and dispatches them
// to the account and auth services. It is a thin dispatcher: no balance or
// history state lives here.
package chatbot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vault-x/vaultx/internal/account"
	"github.com/vault-x/vaultx/internal/auth"
	"github.com/vault-x/vaultx/internal/session"
)

// Intent is a classified user goal derived from free-text input.
type Intent string

const (
	IntentHelp     Intent = "help"
	IntentHistory  Intent = "history"
	IntentClear    Intent = "clear"
	IntentLogout   Intent = "logout"
	IntentBalance  Intent = "balance"
	IntentDeposit  Intent = "deposit"
	IntentWithdraw Intent = "withdraw"
	IntentGreeting Intent = "greeting"
	IntentFallback Intent = "fallback"
)

// rules is the ordered intent table: evaluated top to bottom, first matching
// keyword wins. The order is part of the contract — overlapping keywords
// ("history" contains "hi", withdraw's "take" vs deposit's "add") resolve by
// position, so new intents belong at the end unless they must shadow one.
var rules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentHelp, []string{"help", "commands", "menu"}},
	{IntentHistory, []string{"history", "transactions", "recent"}},
	{IntentClear, []string{"clear", "cls"}},
	{IntentLogout, []string{"logout", "sign out", "signout"}},
	{IntentBalance, []string{"balance", "how much"}},
	{IntentDeposit, []string{"deposit", "top up", "top-up", "add", "credit", "put", "load"}},
	{IntentWithdraw, []string{"withdraw", "take out", "take", "minus", "debit"}},
	{IntentGreeting, []string{"hello", "hey", "hi"}},
}

// Classify resolves input to an intent via case-insensitive substring matching
// over the ordered rule table.
func Classify(input string) Intent {
	input = strings.ToLower(input)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(input, keyword) {
				return rule.intent
			}
		}
	}
	return IntentFallback
}

// defaultAmount is applied when a deposit/withdraw request names no amount.
// Deliberate leniency, not an error path.
var defaultAmount = decimal.NewFromInt(100)

const (
	replyNotLoggedIn = "Please log in first."
	replyStorageDown = "Something went wrong. Please try again."
	replyFallback    = "Sorry, I didn't understand. Type 'help' to see commands."
	replyGreeting    = "Hello! I'm the VaultX assistant. Type 'help' to see what I can do."

	helpText = "I can do:\n" +
		"• balance — show your balance\n" +
		"• deposit <amount> — add money\n" +
		"• withdraw <amount> — take money out\n" +
		"• history — show transactions\n" +
		"• clear — clear chat\n" +
		"• logout — log out"
)

// Reply is the interpreter's output: the matched intent plus a human-readable
// response. Any side effect has already been applied when Interpret returns.
type Reply struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
}

// Interpreter dispatches classified intents to the underlying services.
type Interpreter struct {
	auth     *auth.Service
	accounts *account.Service
	sess     *session.Session
	logger   *slog.Logger
}

// New builds an interpreter over the given services and session.
func New(authSvc *auth.Service, accounts *account.Service, sess *session.Session, logger *slog.Logger) *Interpreter {
	return &Interpreter{auth: authSvc, accounts: accounts, sess: sess, logger: logger}
}

// Interpret classifies one line of input and performs the matching operation.
func (i *Interpreter) Interpret(ctx context.Context, text string) Reply {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Reply{Intent: IntentFallback, Text: replyFallback}
	}

	intent := Classify(raw)
	switch intent {
	case IntentHelp:
		return Reply{Intent: intent, Text: helpText}
	case IntentHistory:
		return i.history(ctx)
	case IntentClear:
		return Reply{Intent: intent, Text: "Cleared."}
	case IntentLogout:
		i.auth.LogOut()
		return Reply{Intent: intent, Text: "You have been logged out."}
	case IntentBalance:
		return i.balance(ctx)
	case IntentDeposit:
		return i.deposit(ctx, raw)
	case IntentWithdraw:
		return i.withdraw(ctx, raw)
	case IntentGreeting:
		return Reply{Intent: intent, Text: replyGreeting}
	default:
		return Reply{Intent: IntentFallback, Text: replyFallback}
	}
}

func (i *Interpreter) history(ctx context.Context) Reply {
	username, ok := i.sess.Current()
	if !ok {
		return Reply{Intent: IntentHistory, Text: replyNotLoggedIn}
	}

	records, err := i.accounts.History(ctx, username)
	if err != nil {
		i.logger.Error("chat history", "username", username, "error", err)
		return Reply{Intent: IntentHistory, Text: replyStorageDown}
	}
	if len(records) == 0 {
		return Reply{Intent: IntentHistory, Text: "No transactions yet."}
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "Your transactions:")
	for _, record := range records {
		lines = append(lines, account.FormatRecord(record))
	}
	return Reply{Intent: IntentHistory, Text: strings.Join(lines, "\n")}
}

func (i *Interpreter) balance(ctx context.Context) Reply {
	username, ok := i.sess.Current()
	if !ok {
		return Reply{Intent: IntentBalance, Text: replyNotLoggedIn}
	}

	balance, err := i.accounts.CheckBalance(ctx, username)
	if err != nil {
		i.logger.Error("chat balance", "username", username, "error", err)
		return Reply{Intent: IntentBalance, Text: replyStorageDown}
	}
	return Reply{Intent: IntentBalance, Text: "Your current balance is $" + account.Format(balance) + "."}
}

func (i *Interpreter) deposit(ctx context.Context, raw string) Reply {
	username, ok := i.sess.Current()
	if !ok {
		return Reply{Intent: IntentDeposit, Text: replyNotLoggedIn}
	}

	amount, found := ExtractAmount(raw)
	if !found {
		amount = defaultAmount
	}

	if _, err := i.accounts.Deposit(ctx, username, amount); err != nil {
		return i.moneyError(IntentDeposit, username, err)
	}
	return Reply{Intent: IntentDeposit, Text: "Deposited $" + account.Format(amount) + "."}
}

func (i *Interpreter) withdraw(ctx context.Context, raw string) Reply {
	username, ok := i.sess.Current()
	if !ok {
		return Reply{Intent: IntentWithdraw, Text: replyNotLoggedIn}
	}

	amount, found := ExtractAmount(raw)
	if !found {
		amount = defaultAmount
	}

	if _, err := i.accounts.Withdraw(ctx, username, amount); err != nil {
		return i.moneyError(IntentWithdraw, username, err)
	}
	return Reply{Intent: IntentWithdraw, Text: "Withdrew $" + account.Format(amount) + "."}
}

func (i *Interpreter) moneyError(intent Intent, username string, err error) Reply {
	switch {
	case errors.Is(err, account.ErrInvalidAmount):
		return Reply{Intent: intent, Text: "Enter a positive amount."}
	case errors.Is(err, account.ErrInsufficientFunds):
		return Reply{Intent: intent, Text: "Insufficient balance."}
	default:
		i.logger.Error("chat ledger operation", "intent", string(intent), "username", username, "error", err)
		return Reply{Intent: intent, Text: replyStorageDown}
	}
}
