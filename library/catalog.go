package library

import (
	"strings"
	"time"
)

// Catalog is the append-only search index over the registry's books. All
// searches are stable filters: results keep insertion order.
type Catalog struct {
	books []*Book
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{} }

// Add makes a book searchable.
func (c *Catalog) Add(b *Book) { c.books = append(c.books, b) }

// Books returns every cataloged book in insertion order.
func (c *Catalog) Books() []*Book { return c.books }

// SearchByTitle returns books whose title contains q, case-insensitively.
func (c *Catalog) SearchByTitle(q string) []*Book {
	return c.filter(func(b *Book) bool { return containsFold(b.Title, q) })
}

// SearchByAuthor returns books whose author contains q, case-insensitively.
func (c *Catalog) SearchByAuthor(q string) []*Book {
	return c.filter(func(b *Book) bool { return containsFold(b.Author, q) })
}

// SearchBySubject returns books whose subject contains q, case-insensitively.
func (c *Catalog) SearchBySubject(q string) []*Book {
	return c.filter(func(b *Book) bool { return containsFold(b.Subject, q) })
}

// SearchByPublicationDate returns books published on exactly that calendar
// day.
func (c *Catalog) SearchByPublicationDate(date time.Time) []*Book {
	return c.filter(func(b *Book) bool { return sameDay(b.PublicationDate, date) })
}

func (c *Catalog) filter(match func(*Book) bool) []*Book {
	var results []*Book
	for _, b := range c.books {
		if match(b) {
			results = append(results, b)
		}
	}
	return results
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
