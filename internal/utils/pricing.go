package utils

import "toolshare-backend/internal/domain"

// ServiceFeePercent is the platform cut added on top of the checkout
// subtotal.
const ServiceFeePercent = 5

// CartTotalCents is the browsing-time cart total: the sum of each line's
// price times quantity. Rental days intentionally do not factor in here;
// the checkout path prices lines with RentalLineTotalCents instead. The two
// formulas coexist on purpose.
func CartTotalCents(items []domain.CartItem) int32 {
	var total int32
	for _, it := range items {
		total += it.PriceCents * it.Quantity
	}
	return total
}

// RentalLineTotalCents is the charged price of one checkout line:
// per-day price times rental days times quantity. Rentals shorter than a
// day are billed as one day.
func RentalLineTotalCents(it domain.CartItem) int32 {
	days := it.RentalDays
	if days < 1 {
		days = 1
	}
	return it.PriceCents * days * it.Quantity
}

// CheckoutSubtotalCents sums the charged line totals of a checkout cart.
func CheckoutSubtotalCents(items []domain.CartItem) int32 {
	var subtotal int32
	for _, it := range items {
		subtotal += RentalLineTotalCents(it)
	}
	return subtotal
}

// ServiceFeeCents computes the platform fee on a subtotal, rounded to the
// nearest cent.
func ServiceFeeCents(subtotalCents int32) int32 {
	return int32((int64(subtotalCents)*ServiceFeePercent + 50) / 100)
}
