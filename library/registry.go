package library

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// DefaultFineRatePerDay is the charge per day a copy is kept past its due
// date, in currency units.
const DefaultFineRatePerDay = 0.50

// Library is the registry owning all books, copies and members for the
// lifetime of the process. It is constructed explicitly and passed by the
// caller; there is deliberately no package-level instance, so tests can
// run any number of independent registries.
//
// All collections are flat, append-only and scanned linearly, which is
// fine at the scale of a small catalog.
type Library struct {
	books   []*Book
	copies  []*Copy
	members []*Member

	Catalog        *Catalog
	Notifications  *NotificationService
	FineRatePerDay float64
}

// NewLibrary returns an empty registry with the default fine rate.
func NewLibrary() *Library {
	return &Library{
		Catalog:        NewCatalog(),
		Notifications:  NewNotificationService(),
		FineRatePerDay: DefaultFineRatePerDay,
	}
}

// ------------------ Registration ------------------

// AddBook records a book and makes it searchable through the catalog.
func (l *Library) AddBook(b *Book) {
	l.books = append(l.books, b)
	l.Catalog.Add(b)
}

// AddCopy records a physical copy.
func (l *Library) AddCopy(c *Copy) {
	l.copies = append(l.copies, c)
}

// AddMember records a member.
func (l *Library) AddMember(m *Member) {
	l.members = append(l.members, m)
}

// RegisterCopy mints an item ID for a new copy of the given book and
// records it.
func (l *Library) RegisterCopy(isbn, rackNumber string) *Copy {
	c := &Copy{ItemID: uuid.NewString(), ISBN: isbn, RackNumber: rackNumber}
	l.AddCopy(c)
	return c
}

// RegisterMember mints a member ID for a new member and records them.
func (l *Library) RegisterMember(name, address string) *Member {
	m := &Member{MemberID: uuid.NewString(), Name: name, Address: address}
	l.AddMember(m)
	return m
}

// ------------------ Lookups ------------------

// FindBookByISBN returns the book with the given ISBN, or nil.
func (l *Library) FindBookByISBN(isbn string) *Book {
	for _, b := range l.books {
		if b.ISBN == isbn {
			return b
		}
	}
	return nil
}

// FindCopyByID returns the copy with the given item ID, or nil.
func (l *Library) FindCopyByID(itemID string) *Copy {
	for _, c := range l.copies {
		if c.ItemID == itemID {
			return c
		}
	}
	return nil
}

// FindMemberByID returns the member with the given ID, or nil.
func (l *Library) FindMemberByID(memberID string) *Member {
	for _, m := range l.members {
		if m.MemberID == memberID {
			return m
		}
	}
	return nil
}

// Members returns all registered members in registration order.
func (l *Library) Members() []*Member { return l.members }

// CopiesOf lists every copy of a book regardless of state.
func (l *Library) CopiesOf(isbn string) []*Copy {
	var copies []*Copy
	for _, c := range l.copies {
		if c.ISBN == isbn {
			copies = append(copies, c)
		}
	}
	return copies
}

// AvailableCopies lists the copies of a book that are on the shelf and
// unreserved.
func (l *Library) AvailableCopies(isbn string) []*Copy {
	var available []*Copy
	for _, c := range l.copies {
		if c.ISBN == isbn && c.IsAvailable() {
			available = append(available, c)
		}
	}
	return available
}

// ------------------ Circulation ------------------

// Return completes the return of the copy with the given item ID,
// resolving the borrowing member from the registry. It fails when the
// copy is unknown or not on loan.
func (l *Library) Return(itemID string, returnDate time.Time) bool {
	c := l.FindCopyByID(itemID)
	if c == nil {
		return false
	}
	borrower := l.FindMemberByID(c.BorrowerID)
	if borrower == nil {
		return false
	}
	return c.Return(borrower, returnDate)
}

// ------------------ Fines ------------------

// CalculateFineAmount is the pure fine formula: daysOverdue times the
// per-day rate when overdue, zero otherwise. No cap, no compounding.
func CalculateFineAmount(daysOverdue int, finePerDay float64) float64 {
	if daysOverdue <= 0 {
		return 0
	}
	return float64(daysOverdue) * finePerDay
}

// AssessFine computes the overdue charge for returning the copy on
// returnDate. It returns nil when the copy has no due date or is not
// overdue. A positive charge is recorded against the current borrower and
// returned. Assessment never happens implicitly on return; callers invoke
// it when their policy says so.
func (l *Library) AssessFine(c *Copy, returnDate time.Time) *Fine {
	if c == nil || c.DueDate == nil || !returnDate.After(*c.DueDate) {
		return nil
	}

	daysOverdue := daysBetween(*c.DueDate, returnDate)
	amount := CalculateFineAmount(daysOverdue, l.FineRatePerDay)
	if amount <= 0 {
		return nil
	}

	borrower := l.FindMemberByID(c.BorrowerID)
	if borrower == nil {
		return nil
	}

	fine := &Fine{
		FineID:     uuid.NewString(),
		MemberID:   borrower.MemberID,
		ItemID:     c.ItemID,
		Amount:     amount,
		DateIssued: returnDate,
	}
	borrower.Fines = append(borrower.Fines, fine)
	return fine
}

// ------------------ Notifications ------------------

// SendOverdueNotifications notifies the borrower of every copy whose due
// date has passed as of today, once per call. It returns the number of
// notifications sent.
func (l *Library) SendOverdueNotifications(today time.Time) int {
	sent := 0
	for _, c := range l.copies {
		if c.BorrowerID == "" || c.DueDate == nil || !today.After(*c.DueDate) {
			continue
		}
		borrower := l.FindMemberByID(c.BorrowerID)
		if borrower == nil {
			continue
		}
		l.Notifications.NotifyOverdue(borrower, c, l.FindBookByISBN(c.ISBN), today)
		sent++
	}
	return sent
}

// ------------------ Statistics ------------------

// Stats computes aggregate counts over the registry.
func (l *Library) Stats() LibraryStats {
	stats := LibraryStats{
		TotalBooks:   len(l.books),
		TotalCopies:  len(l.copies),
		TotalMembers: len(l.members),
	}
	for _, c := range l.copies {
		switch c.Status() {
		case StatusAvailable:
			stats.AvailableCopies++
		case StatusCheckedOut:
			stats.CheckedOutCopies++
		case StatusReserved:
			stats.ReservedCopies++
		}
	}
	return stats
}

// Display formats the snapshot for a text output stream.
func (s LibraryStats) Display(w io.Writer) {
	fmt.Fprintln(w, "=== Library Statistics ===")
	fmt.Fprintf(w, "Total Books: %d\n", s.TotalBooks)
	fmt.Fprintf(w, "Total Copies: %d\n", s.TotalCopies)
	fmt.Fprintf(w, "Total Members: %d\n", s.TotalMembers)
	fmt.Fprintf(w, "Available Copies: %d\n", s.AvailableCopies)
	fmt.Fprintf(w, "Checked Out Copies: %d\n", s.CheckedOutCopies)
	fmt.Fprintf(w, "Reserved Copies: %d\n", s.ReservedCopies)
}

// daysBetween counts whole calendar days from one date to the other,
// ignoring the time of day.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
