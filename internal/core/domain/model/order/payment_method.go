package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for an order. It is stored and
// transmitted by its String form, e.g. "KAKAO_PAY".
//
// Example:
//
//	method, err := order.ParsePaymentMethod(" kakao_pay ")
//	if err != nil {
//		return err
//	}
//	method.IsSimplePayment() // true
type PaymentMethod int

const (
	// UnknownPaymentMethod is the zero value and fails Validate.
	UnknownPaymentMethod PaymentMethod = iota
	// CreditCard is a credit card payment.
	CreditCard
	// DebitCard is a debit card payment.
	DebitCard
	// Cash is paid to the courier on delivery.
	Cash
	// KakaoPay is the KakaoPay wallet.
	KakaoPay
	// NaverPay is the Naver Pay wallet.
	NaverPay
	// TossPay is the Toss wallet.
	TossPay
	// Payco is the PAYCO wallet.
	Payco
	// SamsungPay is the Samsung Pay wallet.
	SamsungPay
)

var paymentMethodNames = map[PaymentMethod]string{
	CreditCard: "CREDIT_CARD",
	DebitCard:  "DEBIT_CARD",
	Cash:       "CASH",
	KakaoPay:   "KAKAO_PAY",
	NaverPay:   "NAVER_PAY",
	TossPay:    "TOSS_PAY",
	Payco:      "PAYCO",
	SamsungPay: "SAMSUNG_PAY",
}

// ParsePaymentMethod accepts the String form in any case, surrounding spaces ignored.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for method, n := range paymentMethodNames {
		if n == name {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a supported payment method", s))
}

// Validate rejects UnknownPaymentMethod and out-of-range values.
func (p PaymentMethod) Validate() error {
	if _, ok := paymentMethodNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a supported payment method", p))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN".
func (p PaymentMethod) String() string {
	if name, ok := paymentMethodNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsElectronic is true for everything except cash on delivery.
func (p PaymentMethod) IsElectronic() bool {
	return p.Validate() == nil && p != Cash
}

// IsSimplePayment reports whether p is one of the mobile wallets.
func (p PaymentMethod) IsSimplePayment() bool {
	switch p {
	case KakaoPay, NaverPay, TossPay, Payco, SamsungPay:
		return true
	default:
		return false
	}
}

// IsCardPayment reports whether p is a credit or debit card.
func (p PaymentMethod) IsCardPayment() bool {
	return p == CreditCard || p == DebitCard
}
