// Package schedule computes interest-free repayment windows for credit
// cards. All functions are pure and safe for concurrent use.
package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/zhuangdx/credit-card-dashboard/internal/models"
)

// Result is the repayment window for a single card and transaction date.
type Result struct {
	RepaymentDate    time.Time `json:"repayment_date"`
	InterestFreeDays int       `json:"interest_free_days"`
}

// CardResult pairs a computed window with the card it belongs to.
type CardResult struct {
	Name              string    `json:"name"`
	RepaymentDate     time.Time `json:"repayment_date"`
	InterestFreeDays  int       `json:"interest_free_days"`
	CurrentBillAmount float64   `json:"current_bill_amount"`
	UnbilledAmount    float64   `json:"unbilled_amount"`
}

// Compute returns the repayment deadline and interest-free day count for a
// transaction on txDate against a card billed on billingDay and due on
// repaymentDay (both calendar days-of-month).
//
// A transaction strictly after the billing day belongs to the next cycle,
// so the bill date advances one month. A repayment day on or before the
// billing day falls in the month after the bill date. Out-of-range days
// (29-31 in short months) are resolved by time.Date normalization, so day
// 31 advanced into February lands on March 2 or 3. InterestFreeDays may be
// zero or negative for a misconfigured cycle; that is reported as-is.
func Compute(txDate time.Time, billingDay, repaymentDay int) Result {
	year, month, day := txDate.Date()

	billDate := time.Date(year, month, billingDay, 0, 0, 0, 0, txDate.Location())
	if day > billingDay {
		billDate = billDate.AddDate(0, 1, 0)
	}

	repaymentDate := time.Date(billDate.Year(), billDate.Month(), repaymentDay, 0, 0, 0, 0, txDate.Location())
	if repaymentDay <= billingDay {
		repaymentDate = repaymentDate.AddDate(0, 1, 0)
	}

	txMidnight := time.Date(year, month, day, 0, 0, 0, 0, txDate.Location())
	days := int(math.Ceil(repaymentDate.Sub(txMidnight).Hours() / 24))

	return Result{RepaymentDate: repaymentDate, InterestFreeDays: days}
}

// ComputeAll evaluates every card against txDate and returns the results
// sorted by InterestFreeDays descending. The sort is stable: cards with
// equal counts keep their input order.
func ComputeAll(txDate time.Time, cards []models.Card) []CardResult {
	results := make([]CardResult, 0, len(cards))
	for _, c := range cards {
		r := Compute(txDate, c.BillingDay, c.RepaymentDay)
		results = append(results, CardResult{
			Name:              c.Name,
			RepaymentDate:     r.RepaymentDate,
			InterestFreeDays:  r.InterestFreeDays,
			CurrentBillAmount: c.CurrentBillAmount,
			UnbilledAmount:    c.UnbilledAmount,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].InterestFreeDays > results[j].InterestFreeDays
	})
	return results
}
