package library

import (
	"fmt"
	"time"
)

// NotificationService builds the circulation notices and delivers them
// through the member's notification sink. Delivery is fire-and-forget.
type NotificationService struct{}

// NewNotificationService returns a notification service.
func NewNotificationService() *NotificationService { return &NotificationService{} }

// NotifyAvailability tells a member the copy they reserved is back on the
// shelf.
func (ns *NotificationService) NotifyAvailability(m *Member, c *Copy, b *Book) {
	m.ReceiveNotification(fmt.Sprintf("The book '%s' you reserved is now available for checkout.", bookTitle(b, c)))
}

// NotifyOverdue tells a borrower how late a copy is as of today.
func (ns *NotificationService) NotifyOverdue(m *Member, c *Copy, b *Book, today time.Time) {
	if c.DueDate == nil {
		return
	}
	days := daysBetween(*c.DueDate, today)
	m.ReceiveNotification(fmt.Sprintf("The book '%s' is %d days overdue. Please return it to avoid additional fines.", bookTitle(b, c), days))
}

// bookTitle falls back to the ISBN when the registry has no record for the
// copy's book.
func bookTitle(b *Book, c *Copy) string {
	if b != nil {
		return b.Title
	}
	return c.ISBN
}
