package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zhuangdx/credit-card-dashboard/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestComputeTransactionBeforeBillingDay(t *testing.T) {
	// billing 25th, repayment 10th, spend on the 1st: the bill lands
	// this month and the repayment rolls to next month's 10th.
	r := Compute(date(2025, time.March, 1), 25, 10)
	assert.Equal(t, date(2025, time.April, 10), r.RepaymentDate)
	assert.Equal(t, 40, r.InterestFreeDays)
}

func TestComputeTransactionAfterBillingDay(t *testing.T) {
	// billing 5th, repayment 25th, spend on the 10th: the bill rolls
	// to next month's 5th and repayment stays in that month.
	r := Compute(date(2025, time.March, 10), 5, 25)
	assert.Equal(t, date(2025, time.April, 25), r.RepaymentDate)
	assert.Equal(t, 46, r.InterestFreeDays)
}

func TestComputeTransactionOnBillingDay(t *testing.T) {
	// Spending exactly on the billing day still belongs to the current
	// cycle (only strictly-greater days roll over).
	r := Compute(date(2025, time.March, 5), 5, 25)
	assert.Equal(t, date(2025, time.March, 25), r.RepaymentDate)
	assert.Equal(t, 20, r.InterestFreeDays)
}

func TestComputeBillingDayMissingFromShortMonth(t *testing.T) {
	// billing day 30 in February does not exist; the bill date rolls
	// into March instead of clamping, and the repayment follows it.
	r := Compute(date(2025, time.January, 31), 30, 5)
	// Jan 30 + 1 month normalizes Feb 30 -> Mar 2; repayment day 5 in
	// March rolls one more month because 5 <= 30.
	assert.Equal(t, date(2025, time.April, 5), r.RepaymentDate)
	assert.Equal(t, 64, r.InterestFreeDays)
}

func TestComputeDay31AdvancedIntoFebruary(t *testing.T) {
	// Day 31 in a February context lands on March 3 in a common year.
	r := Compute(date(2025, time.February, 1), 31, 10)
	// billDate = Feb 31 -> Mar 3, repayment 10 <= 31 so April 10.
	assert.Equal(t, date(2025, time.April, 10), r.RepaymentDate)
	assert.Equal(t, 68, r.InterestFreeDays)
}

func TestComputeYearRollover(t *testing.T) {
	r := Compute(date(2025, time.December, 20), 15, 10)
	// Dec 20 > 15: bill rolls to Jan 15; 10 <= 15: repayment Feb 10.
	assert.Equal(t, date(2026, time.February, 10), r.RepaymentDate)
	assert.Equal(t, 52, r.InterestFreeDays)
}

func TestComputeLeapYearFebruary(t *testing.T) {
	r := Compute(date(2024, time.January, 31), 30, 5)
	// 2024 is a leap year: Feb 30 normalizes to Mar 1.
	bill := date(2024, time.January, 30).AddDate(0, 1, 0)
	assert.Equal(t, date(2024, time.March, 1), bill)
	assert.Equal(t, date(2024, time.April, 5), r.RepaymentDate)
	assert.Equal(t, 65, r.InterestFreeDays)
}

func TestComputeAllSortsDescending(t *testing.T) {
	cards := []models.Card{
		{Name: "mid", BillingDay: 25, RepaymentDay: 10},   // 31 days
		{Name: "short", BillingDay: 15, RepaymentDay: 28}, // 18 days
		{Name: "long", BillingDay: 5, RepaymentDay: 25},   // 46 days, cycle rolled
	}
	results := ComputeAll(date(2025, time.March, 10), cards)

	assert.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].InterestFreeDays, results[i].InterestFreeDays)
	}
	assert.Equal(t, "long", results[0].Name)
	assert.Equal(t, "mid", results[1].Name)
	assert.Equal(t, "short", results[2].Name)
}

func TestComputeAllStableOnTies(t *testing.T) {
	cards := []models.Card{
		{Name: "first", BillingDay: 5, RepaymentDay: 25},
		{Name: "second", BillingDay: 5, RepaymentDay: 25},
		{Name: "third", BillingDay: 5, RepaymentDay: 25},
	}
	results := ComputeAll(date(2025, time.March, 10), cards)

	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)
}

func TestComputeAllEmpty(t *testing.T) {
	results := ComputeAll(date(2025, time.March, 10), nil)
	assert.Empty(t, results)
}

func TestComputeAllCarriesAmounts(t *testing.T) {
	cards := []models.Card{
		{Name: "visa", BillingDay: 5, RepaymentDay: 25, CurrentBillAmount: 1200.50, UnbilledAmount: 88.20},
	}
	results := ComputeAll(date(2025, time.March, 10), cards)
	assert.Equal(t, 1200.50, results[0].CurrentBillAmount)
	assert.Equal(t, 88.20, results[0].UnbilledAmount)
}
