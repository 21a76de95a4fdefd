package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/unibudget/unibudget_backend/models"
)

// The assistant answers from the user's own ledger first: a keyword rule
// that matches composes the reply locally, with no model call. Only
// unmatched questions fall through to Gemini, and only when an API key is
// configured.

type rule struct {
	keywords []string
	answer   func(ctx context.Context, userId int) (string, error)
}

func matches(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var rules = []rule{
	{
		keywords: []string{"balance", "how much do i have", "how much money"},
		answer:   answerBalance,
	},
	{
		keywords: []string{"budget"},
		answer:   answerBudgets,
	},
	{
		keywords: []string{"saving", "saved", "goal"},
		answer:   answerSavings,
	},
	{
		keywords: []string{"subscription", "recurring", "bills", "rent"},
		answer:   answerRecurring,
	},
	{
		keywords: []string{"spent", "spending", "expense"},
		answer:   answerSpending,
	},
	{
		keywords: []string{"student finance", "studentfinance", "student loan"},
		answer:   answerStudentFinance,
	},
}

func answerBalance(ctx context.Context, userId int) (string, error) {
	balance, err := models.GetBalance(ctx, userId)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Your current balance is £%s.", balance.Amount.StringFixed(2)), nil
}

func answerBudgets(ctx context.Context, userId int) (string, error) {
	statuses, err := models.GetBudgetStatuses(ctx, userId)
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "You have no active budgets right now.", nil
	}
	var b strings.Builder
	for _, s := range statuses {
		if s.Exceeded {
			fmt.Fprintf(&b, "%s: over budget by £%s. ", s.Title, s.ExceededBy.StringFixed(2))
		} else {
			fmt.Fprintf(&b, "%s: £%s of £%s spent, £%s left. ",
				s.Title, s.Spent.StringFixed(2), s.Amount.StringFixed(2), s.Remaining.StringFixed(2))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func answerSavings(ctx context.Context, userId int) (string, error) {
	statuses, err := models.GetSavingGoalStatuses(ctx, userId)
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "You have no active saving goals right now.", nil
	}
	var b strings.Builder
	for _, s := range statuses {
		if s.Reached {
			fmt.Fprintf(&b, "%s: reached, £%s saved. ", s.Title, s.Saved.StringFixed(2))
		} else {
			fmt.Fprintf(&b, "%s: £%s of £%s saved. ", s.Title, s.Saved.StringFixed(2), s.Target.StringFixed(2))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func answerRecurring(ctx context.Context, userId int) (string, error) {
	ledger, err := models.GetTransactions(ctx, userId)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	count := 0
	for _, e := range ledger {
		if !e.Type.IsRecurring() || e.Frequency == nil {
			continue
		}
		next, ok := models.NextOccurrenceNow(e.Date, *e.Frequency)
		if !ok {
			continue
		}
		count++
		fmt.Fprintf(&b, "%s: £%s due %s. ", e.Title, e.Amount.Abs().StringFixed(2), next.Format("2 Jan"))
	}
	if count == 0 {
		return "You have no subscriptions or recurring bills on record.", nil
	}
	return strings.TrimSpace(b.String()), nil
}

func answerSpending(ctx context.Context, userId int) (string, error) {
	ledger, err := models.GetTransactions(ctx, userId)
	if err != nil {
		return "", err
	}
	recent := models.SumRecentSpend(ledger, 30)
	return fmt.Sprintf("You have spent £%s over the last 30 days.", recent.StringFixed(2)), nil
}

func answerStudentFinance(ctx context.Context, userId int) (string, error) {
	all, err := models.GetAllTransactions(ctx, userId)
	if err != nil {
		return "", err
	}
	for _, e := range all {
		if e.Type != models.TransactionTypeStudentFinance {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Your student finance totals £%s across %d termly payments.",
			e.Amount.StringFixed(2), len(e.StudentFinancePayments))
		return b.String(), nil
	}
	return "You have no student finance on record.", nil
}

// Reply answers a chat message. Rule answers never leave the server; the
// model fallback sends only the question text, not the ledger.
func Reply(ctx context.Context, userId int, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}

	for _, r := range rules {
		if matches(message, r.keywords) {
			return r.answer(ctx, userId)
		}
	}

	if os.Getenv("GEMINI_API_KEY") != "" {
		answer, err := replyWithModel(ctx, message)
		if err == nil {
			return answer, nil
		}
	}
	return "I can help with your balance, budgets, saving goals, subscriptions and student finance. Try asking about one of those.", nil
}
