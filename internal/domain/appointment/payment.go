package appointment

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

var ErrInvalidPaymentAmount = httperr.ErrBusiness("invalid_payment_amount")

const moneyPlaces = 2

// PaymentStatusFor segue a ordem: paid == 0 → unpaid; paid < total → partial;
// senão paid.
func PaymentStatusFor(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.IsZero():
		return PaymentUnpaid
	case paid.LessThan(total):
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

// DueFor = max(total - paid, 0).
func DueFor(total, paid decimal.Decimal) decimal.Decimal {
	due := total.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// InitPayment prepara um agendamento novo: nada pago, tudo devido.
func InitPayment(ap *models.Appointment, total decimal.Decimal) error {
	total = total.Round(moneyPlaces)
	if total.IsNegative() {
		return ErrInvalidPaymentAmount
	}
	ap.Total = total
	ap.Paid = decimal.Zero
	recompute(ap)
	return nil
}

// isMoney: não negativo e no máximo dois decimais. Nada é arredondado.
func isMoney(v decimal.Decimal) bool {
	return !v.IsNegative() && v.Equal(v.Round(moneyPlaces))
}

// SetPaid registra o valor pago acumulado. Nunca corta o valor em silêncio:
// negativo ou acima do total volta erro para o operador corrigir.
func SetPaid(ap *models.Appointment, paid decimal.Decimal) error {
	if err := CanChangePayment(Status(ap.Status)); err != nil {
		return err
	}

	if !isMoney(paid) || paid.GreaterThan(ap.Total) {
		return ErrInvalidPaymentAmount
	}

	ap.Paid = paid
	recompute(ap)
	return nil
}

// SetTotal altera o valor do serviço. Total abaixo do já pago é recusado.
func SetTotal(ap *models.Appointment, total decimal.Decimal) error {
	if err := CanChangePayment(Status(ap.Status)); err != nil {
		return err
	}

	if !isMoney(total) || ap.Paid.GreaterThan(total) {
		return ErrInvalidPaymentAmount
	}

	ap.Total = total
	recompute(ap)
	return nil
}

// CheckInvariants confere due e payment status contra total/paid.
func CheckInvariants(ap models.Appointment) bool {
	if !ap.Due.Equal(DueFor(ap.Total, ap.Paid)) {
		return false
	}
	return ap.PaymentStatus == string(PaymentStatusFor(ap.Total, ap.Paid))
}

func recompute(ap *models.Appointment) {
	ap.Due = DueFor(ap.Total, ap.Paid)
	ap.PaymentStatus = string(PaymentStatusFor(ap.Total, ap.Paid))
}
