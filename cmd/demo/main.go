package main

import (
	"fmt"
	"os"
	"time"

	"library-system/library"
)

// A scripted walkthrough of the circulation workflows against the sample
// catalog: searches, a checkout, a refused and a successful reservation,
// an overdue return with a fine, and the statistics report. Dates are
// fixed so the output is reproducible.
func main() {
	lib := library.NewLibrary()
	if err := library.SampleSeed().Apply(lib); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding library: %v\n", err)
		os.Exit(1)
	}

	alice := lib.FindMemberByID("MEM001")
	bob := lib.FindMemberByID("MEM002")
	copy1 := lib.FindCopyByID("ITEM001") // Effective Java, first copy
	copy2 := lib.FindCopyByID("ITEM002") // Effective Java, second copy

	fmt.Println("=== Search Results ===")
	for _, b := range lib.Catalog.SearchByTitle("Java") {
		fmt.Printf("Title match 'Java': %s by %s\n", b.Title, b.Author)
	}
	for _, b := range lib.Catalog.SearchBySubject("Programming") {
		fmt.Printf("Subject match 'Programming': %s\n", b.Title)
	}

	day0 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	fmt.Println("\n=== Checkout ===")
	if copy1.CheckOut(alice, day0, library.DefaultLoanPeriodDays) {
		fmt.Printf("'%s' (copy %s) checked out to %s, due %s\n",
			titleOf(lib, copy1), copy1.ItemID, alice.Name, copy1.DueDate.Format("2006-01-02"))
	}

	fmt.Println("\n=== Reservations ===")
	if !bob.ReserveBook(copy1) {
		fmt.Printf("%s cannot reserve copy %s: it is on loan\n", bob.Name, copy1.ItemID)
	}
	if bob.ReserveBook(copy2) {
		fmt.Printf("Copy %s reserved for %s\n", copy2.ItemID, bob.Name)
	}
	if copy2.CheckOut(bob, day0, library.DefaultLoanPeriodDays) {
		fmt.Printf("%s claimed their hold on copy %s\n", bob.Name, copy2.ItemID)
	}

	fmt.Println()
	lib.Stats().Display(os.Stdout)

	// Six days past the 14-day due date.
	returnDay := day0.AddDate(0, 0, 20)

	fmt.Println("\n=== Overdue Notices ===")
	sent := lib.SendOverdueNotifications(returnDay)
	fmt.Printf("Sent %d overdue notification(s)\n", sent)

	fmt.Println("\n=== Return ===")
	fine := lib.AssessFine(copy1, returnDay)
	if lib.Return(copy1.ItemID, returnDay) {
		fmt.Printf("'%s' returned by %s\n", titleOf(lib, copy1), alice.Name)
	}
	if fine != nil {
		fmt.Printf("Fine issued: $%.2f (%s owes $%.2f in total)\n",
			fine.Amount, alice.Name, alice.TotalFineAmount())
	}

	fmt.Println()
	lib.Stats().Display(os.Stdout)
}

func titleOf(lib *library.Library, c *library.Copy) string {
	if b := lib.FindBookByISBN(c.ISBN); b != nil {
		return b.Title
	}
	return c.ISBN
}
