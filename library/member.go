package library

import (
	"fmt"
	"os"
	"time"
)

// ------------------ Circulation delegators ------------------

// CheckOutBook checks the copy out to this member with today's date and
// the default loan period.
func (m *Member) CheckOutBook(c *Copy) bool { return c.CheckOutNow(m) }

// ReturnBook returns a copy this member has on loan.
func (m *Member) ReturnBook(c *Copy) bool { return c.Return(m, time.Now()) }

// ReserveBook places a hold on the copy for this member.
func (m *Member) ReserveBook(c *Copy) bool { return c.Reserve(m) }

// ------------------ Fines ------------------

// UnpaidFines returns the member's outstanding fines, oldest first.
func (m *Member) UnpaidFines() []*Fine {
	var unpaid []*Fine
	for _, f := range m.Fines {
		if !f.Paid {
			unpaid = append(unpaid, f)
		}
	}
	return unpaid
}

// TotalFineAmount sums the member's outstanding fines.
func (m *Member) TotalFineAmount() float64 {
	var total float64
	for _, f := range m.UnpaidFines() {
		total += f.Amount
	}
	return total
}

// PayFine marks the fine with the given ID as paid. It returns false when
// the member has no such fine or it was already paid.
func (m *Member) PayFine(fineID string) bool {
	for _, f := range m.Fines {
		if f.FineID == fineID && !f.Paid {
			f.Paid = true
			return true
		}
	}
	return false
}

// ------------------ Notifications ------------------

// ReceiveNotification is the member's notification sink. Delivery is
// fire-and-forget: one line per message, written to the member's
// configured writer.
func (m *Member) ReceiveNotification(message string) {
	w := m.Notifications
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Notification for %s: %s\n", m.Name, message)
}
