package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"library-system/library"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var seedPath string

func main() {
	root := &cobra.Command{
		Use:           "library-system",
		Short:         "In-memory library circulation: catalog, checkout, reservations and fines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}
	root.PersistentFlags().StringVar(&seedPath, "seed", "", "JSON catalog seed file (default: built-in sample)")

	root.AddCommand(newShellCmd(), newSearchCmd(), newStatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLibrary builds a registry populated from --seed, or from the built-in
// sample catalog when no file is given. State lives only for the life of
// the command.
func newLibrary() (*library.Library, error) {
	lib := library.NewLibrary()

	seed := library.SampleSeed()
	if seedPath != "" {
		loaded, err := library.LoadSeedFile(seedPath)
		if err != nil {
			return nil, err
		}
		seed = loaded
	}

	if err := seed.Apply(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// ------------------ search ------------------

func newSearchCmd() *cobra.Command {
	var title, author, subject, published string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog by title, author, subject or publication date",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := newLibrary()
			if err != nil {
				return err
			}

			var results []*library.Book
			switch {
			case title != "":
				results = lib.Catalog.SearchByTitle(title)
			case author != "":
				results = lib.Catalog.SearchByAuthor(author)
			case subject != "":
				results = lib.Catalog.SearchBySubject(subject)
			case published != "":
				date, err := time.Parse(dateLayout, published)
				if err != nil {
					return fmt.Errorf("parse --published: %w", err)
				}
				results = lib.Catalog.SearchByPublicationDate(date)
			default:
				results = lib.Catalog.Books()
			}

			if asJSON {
				out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			printBooks(lib, results)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "substring of the title")
	cmd.Flags().StringVar(&author, "author", "", "substring of the author")
	cmd.Flags().StringVar(&subject, "subject", "", "substring of the subject")
	cmd.Flags().StringVar(&published, "published", "", "exact publication date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// ------------------ stats ------------------

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate counts for the seeded catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := newLibrary()
			if err != nil {
				return err
			}
			lib.Stats().Display(os.Stdout)
			return nil
		},
	}
}

// ------------------ interactive shell ------------------

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive circulation desk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}
}

func runShell() error {
	lib, err := newLibrary()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Management System!")
	fmt.Println("Available commands:")
	fmt.Println("  Catalog: add book, add copy, list books, list copies, search book")
	fmt.Println("  Members: add member, list members")
	fmt.Println("  Circulation: checkout, return, reserve, cancel reservation")
	fmt.Println("  Fines: assess fine, fines, pay fine")
	fmt.Println("  System: notify overdue, stats, exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add book":
			handleAddBook(scanner, lib)
		case "add copy":
			handleAddCopy(scanner, lib)
		case "add member":
			handleAddMember(scanner, lib)
		case "list books":
			printBooks(lib, lib.Catalog.Books())
		case "list copies":
			handleListCopies(lib)
		case "list members":
			handleListMembers(lib)
		case "search book":
			handleSearch(scanner, lib)
		case "checkout":
			handleCheckout(scanner, lib)
		case "return":
			handleReturn(scanner, lib)
		case "reserve":
			handleReserve(scanner, lib)
		case "cancel reservation":
			handleCancelReservation(scanner, lib)
		case "assess fine":
			handleAssessFine(scanner, lib)
		case "fines":
			handleFines(scanner, lib)
		case "pay fine":
			handlePayFine(scanner, lib)
		case "notify overdue":
			sent := lib.SendOverdueNotifications(time.Now())
			fmt.Printf("Sent %d overdue notification(s)\n", sent)
		case "stats":
			lib.Stats().Display(os.Stdout)
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
	return nil
}

// prompt reads one trimmed line after printing a label. The second return
// is false on EOF.
func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func handleAddBook(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	if lib.FindBookByISBN(isbn) != nil {
		fmt.Printf("A book with ISBN %s already exists\n", isbn)
		return
	}
	title, ok := prompt(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	subject, ok := prompt(sc, "Subject: ")
	if !ok {
		return
	}
	publishedStr, ok := prompt(sc, "Published (YYYY-MM-DD): ")
	if !ok {
		return
	}
	published, err := time.Parse(dateLayout, publishedStr)
	if err != nil {
		fmt.Printf("Invalid date: %s\n", publishedStr)
		return
	}

	lib.AddBook(&library.Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Subject:         subject,
		PublicationDate: published,
	})
	fmt.Printf("Added book '%s' (%s)\n", title, isbn)
}

func handleAddCopy(sc *bufio.Scanner, lib *library.Library) {
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	book := lib.FindBookByISBN(isbn)
	if book == nil {
		fmt.Printf("No book with ISBN %s\n", isbn)
		return
	}
	rack, ok := prompt(sc, "Rack number: ")
	if !ok {
		return
	}
	c := lib.RegisterCopy(isbn, rack)
	fmt.Printf("Added copy %s of '%s' on rack %s\n", c.ItemID, book.Title, rack)
}

func handleAddMember(sc *bufio.Scanner, lib *library.Library) {
	name, ok := prompt(sc, "Name: ")
	if !ok {
		return
	}
	address, ok := prompt(sc, "Address: ")
	if !ok {
		return
	}
	m := lib.RegisterMember(name, address)
	fmt.Printf("Added member '%s' with ID %s\n", name, m.MemberID)
}

func printBooks(lib *library.Library, books []*library.Book) {
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}

	fmt.Printf("%-18s %-30s %-22s %-14s %-12s %s\n", "ISBN", "Title", "Author", "Subject", "Published", "Available")
	fmt.Println(strings.Repeat("-", 110))
	for _, b := range books {
		fmt.Printf("%-18s %-30s %-22s %-14s %-12s %d\n",
			b.ISBN,
			truncateString(b.Title, 30),
			truncateString(b.Author, 22),
			truncateString(b.Subject, 14),
			b.PublicationDate.Format(dateLayout),
			len(lib.AvailableCopies(b.ISBN)))
	}
}

func handleListCopies(lib *library.Library) {
	books := lib.Catalog.Books()
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}

	fmt.Printf("%-10s %-30s %-10s %-12s %-12s %s\n", "Item ID", "Title", "Rack", "Status", "Due", "Held For/By")
	fmt.Println(strings.Repeat("-", 90))
	for _, b := range books {
		for _, c := range lib.CopiesOf(b.ISBN) {
			due := "-"
			if c.DueDate != nil {
				due = c.DueDate.Format(dateLayout)
			}
			holder := "-"
			switch c.Status() {
			case library.StatusCheckedOut:
				holder = memberLabel(lib, c.BorrowerID)
			case library.StatusReserved:
				holder = memberLabel(lib, c.ReservedByID)
			}
			fmt.Printf("%-10s %-30s %-10s %-12s %-12s %s\n",
				c.ItemID, truncateString(b.Title, 30), c.RackNumber, c.Status(), due, holder)
		}
	}
}

func memberLabel(lib *library.Library, memberID string) string {
	if m := lib.FindMemberByID(memberID); m != nil {
		return fmt.Sprintf("%s (%s)", m.Name, m.MemberID)
	}
	return memberID
}

func handleListMembers(lib *library.Library) {
	members := lib.Members()
	if len(members) == 0 {
		fmt.Println("No members registered.")
		return
	}

	fmt.Printf("%-10s %-25s %-25s %-8s %-10s %s\n", "ID", "Name", "Address", "Loans", "Reserved", "Fines Due")
	fmt.Println(strings.Repeat("-", 90))
	for _, m := range members {
		fmt.Printf("%-10s %-25s %-25s %-8d %-10d $%.2f\n",
			m.MemberID,
			truncateString(m.Name, 25),
			truncateString(m.Address, 25),
			len(m.CheckedOut),
			len(m.Reserved),
			m.TotalFineAmount())
	}
}

func handleSearch(sc *bufio.Scanner, lib *library.Library) {
	field, ok := prompt(sc, "Search by (title/author/subject/published): ")
	if !ok {
		return
	}
	query, ok := prompt(sc, "Query: ")
	if !ok {
		return
	}

	var results []*library.Book
	switch field {
	case "title":
		results = lib.Catalog.SearchByTitle(query)
	case "author":
		results = lib.Catalog.SearchByAuthor(query)
	case "subject":
		results = lib.Catalog.SearchBySubject(query)
	case "published":
		date, err := time.Parse(dateLayout, query)
		if err != nil {
			fmt.Printf("Invalid date: %s\n", query)
			return
		}
		results = lib.Catalog.SearchByPublicationDate(date)
	default:
		fmt.Printf("Unknown search field: %s\n", field)
		return
	}

	fmt.Printf("Found %d book(s) matching '%s':\n", len(results), query)
	printBooks(lib, results)
}

// copyAndMember resolves the item and member IDs the handlers all ask for.
func copyAndMember(sc *bufio.Scanner, lib *library.Library) (*library.Copy, *library.Member) {
	itemID, ok := prompt(sc, "Item ID: ")
	if !ok {
		return nil, nil
	}
	c := lib.FindCopyByID(itemID)
	if c == nil {
		fmt.Printf("No copy with item ID %s\n", itemID)
		return nil, nil
	}

	memberID, ok := prompt(sc, "Member ID: ")
	if !ok {
		return nil, nil
	}
	m := lib.FindMemberByID(memberID)
	if m == nil {
		fmt.Printf("No member with ID %s\n", memberID)
		return nil, nil
	}
	return c, m
}

func handleCheckout(sc *bufio.Scanner, lib *library.Library) {
	c, m := copyAndMember(sc, lib)
	if c == nil || m == nil {
		return
	}
	if !m.CheckOutBook(c) {
		fmt.Println("Checkout refused: the copy is not available to this member, or the member is over the checkout limit.")
		return
	}
	book := lib.FindBookByISBN(c.ISBN)
	fmt.Printf("'%s' checked out to %s, due %s\n", bookTitleOr(book, c.ISBN), m.Name, c.DueDate.Format(dateLayout))
}

func handleReturn(sc *bufio.Scanner, lib *library.Library) {
	itemID, ok := prompt(sc, "Item ID: ")
	if !ok {
		return
	}
	c := lib.FindCopyByID(itemID)
	if c == nil {
		fmt.Printf("No copy with item ID %s\n", itemID)
		return
	}

	// Assess before the return clears the due date.
	now := time.Now()
	fine := lib.AssessFine(c, now)

	if !lib.Return(itemID, now) {
		fmt.Println("Return refused: the copy is not on loan.")
		return
	}

	book := lib.FindBookByISBN(c.ISBN)
	fmt.Printf("'%s' returned\n", bookTitleOr(book, c.ISBN))
	if fine != nil {
		fmt.Printf("Overdue fine of $%.2f issued (fine ID %s)\n", fine.Amount, fine.FineID)
	}
}

func handleReserve(sc *bufio.Scanner, lib *library.Library) {
	c, m := copyAndMember(sc, lib)
	if c == nil || m == nil {
		return
	}
	if !m.ReserveBook(c) {
		fmt.Println("Reservation refused: only a free copy can be reserved.")
		return
	}
	book := lib.FindBookByISBN(c.ISBN)
	fmt.Printf("'%s' reserved for %s\n", bookTitleOr(book, c.ISBN), m.Name)
}

func handleCancelReservation(sc *bufio.Scanner, lib *library.Library) {
	c, m := copyAndMember(sc, lib)
	if c == nil || m == nil {
		return
	}
	if !c.CancelReservation(m) {
		fmt.Println("Cancel refused: no reservation by this member on that copy.")
		return
	}
	fmt.Println("Reservation cancelled.")
}

func handleAssessFine(sc *bufio.Scanner, lib *library.Library) {
	itemID, ok := prompt(sc, "Item ID: ")
	if !ok {
		return
	}
	c := lib.FindCopyByID(itemID)
	if c == nil {
		fmt.Printf("No copy with item ID %s\n", itemID)
		return
	}
	dateStr, ok := prompt(sc, "Return date (YYYY-MM-DD, empty for today): ")
	if !ok {
		return
	}
	returnDate := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			fmt.Printf("Invalid date: %s\n", dateStr)
			return
		}
		returnDate = parsed
	}

	fine := lib.AssessFine(c, returnDate)
	if fine == nil {
		fmt.Println("No fine due.")
		return
	}
	fmt.Printf("Fine of $%.2f issued to %s (fine ID %s)\n", fine.Amount, memberLabel(lib, fine.MemberID), fine.FineID)
}

func handleFines(sc *bufio.Scanner, lib *library.Library) {
	memberID, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}
	m := lib.FindMemberByID(memberID)
	if m == nil {
		fmt.Printf("No member with ID %s\n", memberID)
		return
	}

	unpaid := m.UnpaidFines()
	if len(unpaid) == 0 {
		fmt.Printf("%s has no outstanding fines.\n", m.Name)
		return
	}
	fmt.Printf("Outstanding fines for %s:\n", m.Name)
	for _, f := range unpaid {
		fmt.Printf("  %s  $%.2f  issued %s  (item %s)\n", f.FineID, f.Amount, f.DateIssued.Format(dateLayout), f.ItemID)
	}
	fmt.Printf("Total: $%.2f\n", m.TotalFineAmount())
}

func handlePayFine(sc *bufio.Scanner, lib *library.Library) {
	memberID, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}
	m := lib.FindMemberByID(memberID)
	if m == nil {
		fmt.Printf("No member with ID %s\n", memberID)
		return
	}
	fineID, ok := prompt(sc, "Fine ID: ")
	if !ok {
		return
	}
	if !m.PayFine(fineID) {
		fmt.Println("Payment refused: unknown fine ID or already paid.")
		return
	}
	fmt.Printf("Fine %s paid. Remaining balance: $%.2f\n", fineID, m.TotalFineAmount())
}

func bookTitleOr(b *library.Book, fallback string) string {
	if b != nil {
		return b.Title
	}
	return fallback
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
