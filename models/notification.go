package models

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/unibudget/unibudget_backend/config"
)

// Notifications are composed on read from the ledger and goal state, never
// stored as rows. Ids are deterministic so dismissals survive recomposition:
// the same upcoming charge always produces the same id.
type Notification struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

const (
	NotificationKindRecurring      = "recurring"
	NotificationKindStudentFinance = "studentfinance"
	NotificationKindBudgetWarning  = "budget-warning"
	NotificationKindBudgetExceeded = "budget-exceeded"
	NotificationKindGoalReached    = "goal-reached"
)

func dismissedSetKey(userId int) string {
	return "DismissedNotifications:" + strconv.Itoa(userId)
}

func goalReachedFlagKey(goalId int) string {
	return "GoalReached:" + strconv.Itoa(goalId)
}

const dateLayout = "2006-01-02"

// composeRecurringReminders yields a reminder for every subscription/house
// entry whose next occurrence is at most 3 days away.
func composeRecurringReminders(ledger []*Transaction, now time.Time) []Notification {
	var out []Notification
	for _, e := range ledger {
		if e == nil || !e.Type.IsRecurring() || e.Frequency == nil {
			continue
		}
		next, ok := NextOccurrence(e.Date, *e.Frequency, now)
		if !ok {
			continue
		}
		days := DaysUntil(next, now)
		if days < 0 || days > RecurringReminderWindowDays {
			continue
		}
		when := "in " + strconv.Itoa(days) + " days"
		if days == 0 {
			when = "today"
		} else if days == 1 {
			when = "tomorrow"
		}
		out = append(out, Notification{
			ID:      fmt.Sprintf("recurring:%d:%s", e.ID, next.Format(dateLayout)),
			Kind:    NotificationKindRecurring,
			Title:   e.Title,
			Message: fmt.Sprintf("%s is due %s (£%s)", e.Title, when, e.Amount.Abs().StringFixed(2)),
			Date:    next.Format(dateLayout),
		})
	}
	return out
}

// composeStudentFinanceNotices flags termly payments arriving within 30 days.
func composeStudentFinanceNotices(entries []*Transaction, now time.Time) []Notification {
	var out []Notification
	for _, e := range entries {
		if e == nil || e.Type != TransactionTypeStudentFinance {
			continue
		}
		for _, p := range e.StudentFinancePayments {
			days := DaysUntil(p.Date, now)
			if days < 0 || days > StudentFinanceNoticeWindowDays {
				continue
			}
			out = append(out, Notification{
				ID:      fmt.Sprintf("studentfinance:%d:%d", e.ID, p.ID),
				Kind:    NotificationKindStudentFinance,
				Title:   "Student finance",
				Message: fmt.Sprintf("a student finance payment of £%s arrives on %s", p.Amount.StringFixed(2), p.Date.Format(dateLayout)),
				Date:    p.Date.Format(dateLayout),
			})
		}
	}
	return out
}

// composeBudgetAlerts turns budget evaluations into warning/exceeded alerts.
// The id carries the window start so a new period resets the dismissal.
func composeBudgetAlerts(statuses []BudgetStatus, goals []*Transaction) []Notification {
	startDates := make(map[int]string, len(goals))
	for _, g := range goals {
		if g.StartDate != nil {
			startDates[g.ID] = g.StartDate.Format(dateLayout)
		}
	}

	var out []Notification
	for _, s := range statuses {
		window := startDates[s.GoalId]
		if s.Exceeded {
			out = append(out, Notification{
				ID:      fmt.Sprintf("budget-exceeded:%d:%s", s.GoalId, window),
				Kind:    NotificationKindBudgetExceeded,
				Title:   s.Title,
				Message: fmt.Sprintf("you have exceeded your %s budget by £%s", s.Title, s.ExceededBy.StringFixed(2)),
			})
		} else if s.Warning {
			out = append(out, Notification{
				ID:      fmt.Sprintf("budget-warning:%d:%s", s.GoalId, window),
				Kind:    NotificationKindBudgetWarning,
				Title:   s.Title,
				Message: fmt.Sprintf("you have spent £%s of your £%s %s budget", s.Spent.StringFixed(2), s.Amount.StringFixed(2), s.Title),
			})
		}
	}
	return out
}

// reachedFlags records which goals have already been congratulated so the
// goal-reached notice fires exactly once per goal.
type reachedFlags interface {
	alreadyFired(goalId int) bool
	markFired(goalId int)
}

type redisReachedFlags struct{}

func (redisReachedFlags) alreadyFired(goalId int) bool {
	_, found, _ := config.GetRedisValue(goalReachedFlagKey(goalId))
	return found
}

func (redisReachedFlags) markFired(goalId int) {
	_ = config.SetRedisValue(goalReachedFlagKey(goalId), "1", 0)
}

// composeGoalReached congratulates a completed saving goal exactly once.
// The flag persists, so a goal that dips back under target and recovers
// does not fire again.
func composeGoalReached(statuses []SavingGoalStatus, flags reachedFlags) []Notification {
	var out []Notification
	for _, s := range statuses {
		if !s.Reached || flags.alreadyFired(s.GoalId) {
			continue
		}
		out = append(out, Notification{
			ID:      fmt.Sprintf("goal-reached:%d", s.GoalId),
			Kind:    NotificationKindGoalReached,
			Title:   s.Title,
			Message: fmt.Sprintf("congratulations, you reached your %s saving goal of £%s", s.Title, s.Target.StringFixed(2)),
		})
		flags.markFired(s.GoalId)
	}
	return out
}

// GetNotifications composes the user's current notifications and filters
// out anything they have dismissed.
func GetNotifications(ctx context.Context, userId int) ([]Notification, error) {
	ledger, err := GetTransactions(ctx, userId)
	if err != nil {
		return nil, err
	}
	all, err := GetAllTransactions(ctx, userId)
	if err != nil {
		return nil, err
	}
	goals, err := GetGoals(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var budgetStatuses []BudgetStatus
	var savingStatuses []SavingGoalStatus
	for _, g := range goals {
		switch g.Type {
		case TransactionTypeBudget:
			budgetStatuses = append(budgetStatuses, EvaluateBudget(g, ledger, now))
		case TransactionTypeSaving:
			savingStatuses = append(savingStatuses, EvaluateSavingGoal(g))
		}
	}

	var notifications []Notification
	notifications = append(notifications, composeRecurringReminders(ledger, now)...)
	notifications = append(notifications, composeStudentFinanceNotices(all, now)...)
	notifications = append(notifications, composeBudgetAlerts(budgetStatuses, goals)...)
	notifications = append(notifications, composeGoalReached(savingStatuses, redisReachedFlags{})...)

	dismissed, err := config.GetRedisSetMembers(dismissedSetKey(userId))
	if err != nil || len(dismissed) == 0 {
		return notifications, nil
	}
	dismissedSet := make(map[string]bool, len(dismissed))
	for _, id := range dismissed {
		dismissedSet[id] = true
	}

	filtered := notifications[:0]
	for _, n := range notifications {
		if !dismissedSet[n.ID] {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// DismissNotification hides a composed notification for good. Dismissing
// an id that no longer composes is harmless.
func DismissNotification(ctx context.Context, userId int, notificationId string) error {
	return config.AddRedisSet(dismissedSetKey(userId), notificationId)
}
