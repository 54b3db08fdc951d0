package library

import (
	"fmt"
	"time"
)

const (
	// MaxCheckedOutBooks is the number of copies a member may have on loan
	// at the same time.
	MaxCheckedOutBooks = 5

	// DefaultLoanPeriodDays is the loan period applied by the convenience
	// checkout helpers.
	DefaultLoanPeriodDays = 14
)

// Status derives the copy's lifecycle state from its references. A set
// borrower always wins over a leftover reservation.
func (c *Copy) Status() CopyStatus {
	switch {
	case c.BorrowerID != "":
		return StatusCheckedOut
	case c.ReservedByID != "":
		return StatusReserved
	default:
		return StatusAvailable
	}
}

// IsAvailable reports whether the copy is on the shelf with no reservation
// against it. A reserved copy is not available to the general public even
// though it is physically present.
func (c *Copy) IsAvailable() bool {
	return c.Status() == StatusAvailable
}

// CheckOut lends the copy to m starting at checkoutDate for
// loanPeriodDays. It succeeds only when the copy is free or reserved by m
// (a member claiming their own hold) and m is under the checkout limit.
// On failure nothing is mutated.
func (c *Copy) CheckOut(m *Member, checkoutDate time.Time, loanPeriodDays int) bool {
	if m == nil || c.BorrowerID != "" {
		return false
	}
	if c.ReservedByID != "" && c.ReservedByID != m.MemberID {
		return false
	}
	if len(m.CheckedOut) >= MaxCheckedOutBooks {
		m.ReceiveNotification(fmt.Sprintf("You have reached the maximum checkout limit of %d books", MaxCheckedOutBooks))
		return false
	}

	due := checkoutDate.AddDate(0, 0, loanPeriodDays)
	c.BorrowerID = m.MemberID
	c.BorrowedDate = &checkoutDate
	c.DueDate = &due
	c.ReservedByID = ""

	m.CheckedOut = append(m.CheckedOut, c.ItemID)
	m.Reserved = removeID(m.Reserved, c.ItemID)
	return true
}

// CheckOutNow is CheckOut with today's date and the default loan period.
func (c *Copy) CheckOutNow(m *Member) bool {
	return c.CheckOut(m, time.Now(), DefaultLoanPeriodDays)
}

// Return ends the loan held by borrower. It fails when the copy is not on
// loan or borrower is not the member it is lent to. Fines are never
// assessed here; that is a separate registry step (Library.AssessFine)
// the caller invokes with the return date when it wants one.
func (c *Copy) Return(borrower *Member, returnDate time.Time) bool {
	if c.BorrowerID == "" || borrower == nil || borrower.MemberID != c.BorrowerID {
		return false
	}

	borrower.CheckedOut = removeID(borrower.CheckedOut, c.ItemID)
	c.BorrowerID = ""
	c.BorrowedDate = nil
	c.DueDate = nil
	return true
}

// Reserve places a hold on the copy for m. Reservations target copies on
// the shelf only: a copy that is already reserved or currently on loan
// (to m or anyone else) cannot be reserved.
func (c *Copy) Reserve(m *Member) bool {
	if m == nil {
		return false
	}
	if c.ReservedByID != "" {
		m.ReceiveNotification("This copy is already reserved")
		return false
	}
	if c.BorrowerID == m.MemberID {
		m.ReceiveNotification("You cannot reserve a book you already have checked out")
		return false
	}
	if c.BorrowerID != "" {
		return false
	}

	c.ReservedByID = m.MemberID
	m.Reserved = append(m.Reserved, c.ItemID)
	return true
}

// CancelReservation releases the hold on the copy. Only the member who
// placed the reservation can cancel it.
func (c *Copy) CancelReservation(m *Member) bool {
	if m == nil || c.ReservedByID == "" || c.ReservedByID != m.MemberID {
		return false
	}
	c.ReservedByID = ""
	m.Reserved = removeID(m.Reserved, c.ItemID)
	return true
}

// removeID drops the first occurrence of id, preserving order.
func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
