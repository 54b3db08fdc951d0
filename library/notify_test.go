package library

import (
	"bytes"
	"strings"
	"testing"
)

func TestNotifyAvailability(t *testing.T) {
	var inbox bytes.Buffer
	m := &Member{MemberID: "M1", Name: "Bob", Notifications: &inbox}
	c := testCopy("ITEM1")
	b := &Book{ISBN: c.ISBN, Title: "Effective Java"}

	ns := NewNotificationService()
	ns.NotifyAvailability(m, c, b)

	if !strings.Contains(inbox.String(), "'Effective Java' you reserved is now available") {
		t.Fatalf("unexpected message: %q", inbox.String())
	}
}

func TestNotifyFallsBackToISBN(t *testing.T) {
	var inbox bytes.Buffer
	m := &Member{MemberID: "M1", Name: "Bob", Notifications: &inbox}
	c := testCopy("ITEM1")

	NewNotificationService().NotifyAvailability(m, c, nil)

	if !strings.Contains(inbox.String(), c.ISBN) {
		t.Fatalf("expected ISBN fallback, got %q", inbox.String())
	}
}

func TestNotifyOverdueCountsDays(t *testing.T) {
	var inbox bytes.Buffer
	m := &Member{MemberID: "M1", Name: "Bob", Notifications: &inbox}

	c := testCopy("ITEM1")
	due := day(14)
	c.BorrowerID = "M1"
	c.DueDate = &due

	NewNotificationService().NotifyOverdue(m, c, nil, day(17))

	if !strings.Contains(inbox.String(), "3 days overdue") {
		t.Fatalf("unexpected message: %q", inbox.String())
	}

	// No due date, no message.
	inbox.Reset()
	c.DueDate = nil
	NewNotificationService().NotifyOverdue(m, c, nil, day(17))
	if inbox.Len() != 0 {
		t.Fatalf("expected no message, got %q", inbox.String())
	}
}
