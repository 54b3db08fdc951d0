package library

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLibrary builds a registry with one two-copy title, one single-copy
// title and two members whose notifications are discarded.
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib := NewLibrary()

	lib.AddBook(&Book{
		ISBN: "978-0134685991", Title: "Effective Java", Author: "Joshua Bloch",
		Subject: "Programming", PublicationDate: time.Date(2017, time.December, 27, 0, 0, 0, 0, time.UTC),
	})
	lib.AddBook(&Book{
		ISBN: "978-0135166307", Title: "Clean Code", Author: "Robert Martin",
		Subject: "Programming", PublicationDate: time.Date(2008, time.August, 1, 0, 0, 0, 0, time.UTC),
	})

	lib.AddCopy(&Copy{ItemID: "ITEM001", ISBN: "978-0134685991", RackNumber: "A1-001"})
	lib.AddCopy(&Copy{ItemID: "ITEM002", ISBN: "978-0134685991", RackNumber: "A1-002"})
	lib.AddCopy(&Copy{ItemID: "ITEM003", ISBN: "978-0135166307", RackNumber: "A2-001"})

	lib.AddMember(&Member{MemberID: "MEM001", Name: "Alice Johnson", Address: "123 Main St", Notifications: io.Discard})
	lib.AddMember(&Member{MemberID: "MEM002", Name: "Bob Smith", Address: "456 Oak Ave", Notifications: io.Discard})
	return lib
}

func TestFinders(t *testing.T) {
	lib := newTestLibrary(t)

	require.NotNil(t, lib.FindBookByISBN("978-0134685991"))
	require.NotNil(t, lib.FindCopyByID("ITEM002"))
	require.NotNil(t, lib.FindMemberByID("MEM001"))

	assert.Nil(t, lib.FindBookByISBN("978-0000000000"))
	assert.Nil(t, lib.FindCopyByID("ITEM999"))
	assert.Nil(t, lib.FindMemberByID("MEM999"))
}

func TestRegisterMintsIDs(t *testing.T) {
	lib := newTestLibrary(t)

	m := lib.RegisterMember("Charlie", "789 Pine Rd")
	require.NotEmpty(t, m.MemberID)
	assert.Same(t, m, lib.FindMemberByID(m.MemberID))

	c := lib.RegisterCopy("978-0135166307", "A2-002")
	require.NotEmpty(t, c.ItemID)
	assert.Same(t, c, lib.FindCopyByID(c.ItemID))
	assert.NotEqual(t, m.MemberID, c.ItemID)
}

func TestAvailableCopies(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	bob := lib.FindMemberByID("MEM002")

	require.Len(t, lib.AvailableCopies("978-0134685991"), 2)

	require.True(t, lib.FindCopyByID("ITEM001").CheckOut(alice, day(0), 14))
	require.True(t, lib.FindCopyByID("ITEM002").Reserve(bob))

	// Loaned and reserved copies are both unavailable to the public.
	assert.Empty(t, lib.AvailableCopies("978-0134685991"))
	assert.Len(t, lib.AvailableCopies("978-0135166307"), 1)
}

func TestRegistryReturn(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	c := lib.FindCopyByID("ITEM001")

	require.True(t, c.CheckOut(alice, day(0), 14))
	require.True(t, lib.Return("ITEM001", day(5)))

	assert.Equal(t, StatusAvailable, c.Status())
	assert.Empty(t, alice.CheckedOut)

	assert.False(t, lib.Return("ITEM001", day(5)), "second return should fail")
	assert.False(t, lib.Return("ITEM999", day(5)), "unknown item should fail")
}

func TestCalculateFineAmount(t *testing.T) {
	assert.Equal(t, 0.0, CalculateFineAmount(0, 0.50))
	assert.Equal(t, 0.0, CalculateFineAmount(-3, 0.50))
	assert.Equal(t, 2.50, CalculateFineAmount(5, 0.50))
	assert.Equal(t, 0.0, CalculateFineAmount(5, 0))
}

func TestAssessFine(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	c := lib.FindCopyByID("ITEM001")

	require.True(t, c.CheckOut(alice, day(0), 14))

	t.Run("no fine on or before the due date", func(t *testing.T) {
		assert.Nil(t, lib.AssessFine(c, day(10)))
		assert.Nil(t, lib.AssessFine(c, day(14)))
		assert.Empty(t, alice.Fines)
	})

	t.Run("overdue return is charged per day", func(t *testing.T) {
		fine := lib.AssessFine(c, day(19)) // five days late
		require.NotNil(t, fine)
		assert.Equal(t, 2.50, fine.Amount)
		assert.Equal(t, "MEM001", fine.MemberID)
		assert.Equal(t, "ITEM001", fine.ItemID)
		assert.NotEmpty(t, fine.FineID)
		assert.False(t, fine.Paid)
		require.Len(t, alice.Fines, 1)
		assert.Same(t, fine, alice.Fines[0])
	})

	t.Run("no due date means no fine", func(t *testing.T) {
		free := lib.FindCopyByID("ITEM003")
		assert.Nil(t, lib.AssessFine(free, day(30)))
		assert.Nil(t, lib.AssessFine(nil, day(30)))
	})
}

func TestAssessFineHonorsRate(t *testing.T) {
	lib := newTestLibrary(t)
	lib.FineRatePerDay = 1.25
	alice := lib.FindMemberByID("MEM001")
	c := lib.FindCopyByID("ITEM001")

	require.True(t, c.CheckOut(alice, day(0), 14))
	fine := lib.AssessFine(c, day(16))
	require.NotNil(t, fine)
	assert.Equal(t, 2.50, fine.Amount)
}

func TestSendOverdueNotifications(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	bob := lib.FindMemberByID("MEM002")

	var inbox bytes.Buffer
	alice.Notifications = &inbox

	// Alice's loan is overdue, Bob's is not.
	require.True(t, lib.FindCopyByID("ITEM001").CheckOut(alice, day(0), 14))
	require.True(t, lib.FindCopyByID("ITEM003").CheckOut(bob, day(10), 14))

	sent := lib.SendOverdueNotifications(day(17))
	assert.Equal(t, 1, sent)
	assert.Contains(t, inbox.String(), "Notification for Alice Johnson")
	assert.Contains(t, inbox.String(), "'Effective Java' is 3 days overdue")

	// Not yet due: nothing goes out.
	assert.Equal(t, 0, lib.SendOverdueNotifications(day(5)))
}

func TestStats(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	bob := lib.FindMemberByID("MEM002")

	require.True(t, lib.FindCopyByID("ITEM001").CheckOut(alice, day(0), 14))
	require.True(t, lib.FindCopyByID("ITEM002").Reserve(bob))

	stats := lib.Stats()
	assert.Equal(t, LibraryStats{
		TotalBooks:       2,
		TotalCopies:      3,
		TotalMembers:     2,
		AvailableCopies:  1,
		CheckedOutCopies: 1,
		ReservedCopies:   1,
	}, stats)

	var out bytes.Buffer
	stats.Display(&out)
	assert.Contains(t, out.String(), "Total Books: 2")
	assert.Contains(t, out.String(), "Reserved Copies: 1")
}

// Two copies of the same title: a reservation cannot queue against the
// loaned copy, but the free copy can be held.
func TestReservationTargetsShelfCopies(t *testing.T) {
	lib := newTestLibrary(t)
	alice := lib.FindMemberByID("MEM001")
	bob := lib.FindMemberByID("MEM002")

	copy1 := lib.FindCopyByID("ITEM001")
	copy2 := lib.FindCopyByID("ITEM002")

	require.True(t, copy1.CheckOut(alice, day(0), 14))
	assert.False(t, bob.ReserveBook(copy1), "reserving the loaned copy must fail")
	assert.True(t, bob.ReserveBook(copy2), "reserving the free copy must succeed")

	assert.Equal(t, StatusReserved, copy2.Status())
	assert.Equal(t, []string{"ITEM002"}, bob.Reserved)
}
