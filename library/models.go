package library

import (
	"io"
	"time"
)

// CopyStatus describes where a physical copy sits in its lifecycle. It is
// always derived from the borrower/reserver references via Copy.Status, so
// it can never drift out of sync with them.
type CopyStatus string

const (
	StatusAvailable  CopyStatus = "AVAILABLE"
	StatusCheckedOut CopyStatus = "CHECKED_OUT"
	StatusReserved   CopyStatus = "RESERVED"
)

// Book is an immutable bibliographic record. Books are identified by ISBN
// within a registry.
type Book struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Subject         string    `json:"subject"`
	PublicationDate time.Time `json:"publication_date"`
}

// Copy is one physical instance of a Book, individually trackable. The
// owning book and the borrowing/reserving member are referenced by ID
// rather than by pointer, so a registry can resolve either side without
// object cycles.
type Copy struct {
	ItemID     string `json:"item_id"`
	ISBN       string `json:"isbn"`
	RackNumber string `json:"rack_number"`

	BorrowerID   string     `json:"borrower_id,omitempty"`
	BorrowedDate *time.Time `json:"borrowed_date,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ReservedByID string     `json:"reserved_by_id,omitempty"`
}

// Member is a registered library member. CheckedOut and Reserved hold item
// IDs in the order the loans/reservations were made.
type Member struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`

	CheckedOut []string `json:"checked_out,omitempty"`
	Reserved   []string `json:"reserved,omitempty"`
	Fines      []*Fine  `json:"fines,omitempty"`

	// Notifications receives the member's notification lines. Nil means
	// os.Stdout.
	Notifications io.Writer `json:"-"`
}

// Fine records an overdue charge against a member. Everything except Paid
// is immutable once issued.
type Fine struct {
	FineID     string    `json:"fine_id"`
	MemberID   string    `json:"member_id"`
	ItemID     string    `json:"item_id"`
	Amount     float64   `json:"amount"`
	DateIssued time.Time `json:"date_issued"`
	Paid       bool      `json:"paid"`
}

// LibraryStats is a read-only aggregate snapshot of a registry.
type LibraryStats struct {
	TotalBooks       int `json:"total_books"`
	TotalCopies      int `json:"total_copies"`
	TotalMembers     int `json:"total_members"`
	AvailableCopies  int `json:"available_copies"`
	CheckedOutCopies int `json:"checked_out_copies"`
	ReservedCopies   int `json:"reserved_copies"`
}
