package utils

import "github.com/julianstephens/tutr/internal/models"

// IncomeSummary is the billing picture for one month.
type IncomeSummary struct {
	Month    string
	Expected float64
	Paid     float64
	Due      float64
}

// MonthlyIncome sums every student's monthly fee.
func MonthlyIncome(students []models.Student) float64 {
	var total float64
	for _, s := range students {
		total += s.MonthlySalary
	}
	return total
}

// PaidIncome sums the paid records for month.
func PaidIncome(records []models.SalaryRecord, month string) float64 {
	return sumRecords(records, month, models.PaymentPaid)
}

// DueIncome sums the outstanding records for month.
func DueIncome(records []models.SalaryRecord, month string) float64 {
	return sumRecords(records, month, models.PaymentDue)
}

// SummarizeIncome builds the summary shown by the income command.
func SummarizeIncome(state models.AppState, month string) IncomeSummary {
	return IncomeSummary{
		Month:    month,
		Expected: MonthlyIncome(state.Students),
		Paid:     PaidIncome(state.SalaryRecords, month),
		Due:      DueIncome(state.SalaryRecords, month),
	}
}

func sumRecords(records []models.SalaryRecord, month string, status models.PaymentStatus) float64 {
	var total float64
	for _, r := range records {
		if r.Month == month && r.Status == status {
			total += r.Amount
		}
	}
	return total
}
