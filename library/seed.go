package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// seedDateLayout is the calendar-day format used in seed files.
const seedDateLayout = "2006-01-02"

// Seed is a catalog snapshot used to populate a fresh registry, e.g. from
// a JSON file handed to the CLI.
type Seed struct {
	Books   []SeedBook   `json:"books"`
	Members []SeedMember `json:"members"`
}

// SeedBook carries one title plus its physical copies.
type SeedBook struct {
	ISBN      string     `json:"isbn"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Subject   string     `json:"subject"`
	Published string     `json:"published"` // YYYY-MM-DD
	Copies    []SeedCopy `json:"copies"`
}

// SeedCopy carries one physical copy. An empty item ID gets minted on
// apply.
type SeedCopy struct {
	ItemID     string `json:"item_id"`
	RackNumber string `json:"rack_number"`
}

// SeedMember carries one member. An empty member ID gets minted on apply.
type SeedMember struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// ReadSeed parses a JSON seed from r.
func ReadSeed(r io.Reader) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var s Seed
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &s, nil
}

// LoadSeedFile reads and parses the seed file at path.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return ReadSeed(f)
}

// Apply populates the registry from the seed. It stops at the first bad
// record, leaving earlier records applied.
func (s *Seed) Apply(l *Library) error {
	for _, sb := range s.Books {
		published, err := time.Parse(seedDateLayout, sb.Published)
		if err != nil {
			return fmt.Errorf("book %q: parse published date: %w", sb.ISBN, err)
		}
		l.AddBook(&Book{
			ISBN:            sb.ISBN,
			Title:           sb.Title,
			Author:          sb.Author,
			Subject:         sb.Subject,
			PublicationDate: published,
		})
		for _, sc := range sb.Copies {
			itemID := sc.ItemID
			if itemID == "" {
				itemID = uuid.NewString()
			}
			l.AddCopy(&Copy{ItemID: itemID, ISBN: sb.ISBN, RackNumber: sc.RackNumber})
		}
	}

	for _, sm := range s.Members {
		memberID := sm.MemberID
		if memberID == "" {
			memberID = uuid.NewString()
		}
		l.AddMember(&Member{MemberID: memberID, Name: sm.Name, Address: sm.Address})
	}
	return nil
}

// SampleSeed is the built-in demonstration catalog: three programming
// titles, four copies and two members.
func SampleSeed() *Seed {
	return &Seed{
		Books: []SeedBook{
			{
				ISBN: "978-0134685991", Title: "Effective Java", Author: "Joshua Bloch",
				Subject: "Programming", Published: "2017-12-27",
				Copies: []SeedCopy{
					{ItemID: "ITEM001", RackNumber: "A1-001"},
					{ItemID: "ITEM002", RackNumber: "A1-002"},
				},
			},
			{
				ISBN: "978-0135166307", Title: "Clean Code", Author: "Robert Martin",
				Subject: "Programming", Published: "2008-08-01",
				Copies: []SeedCopy{{ItemID: "ITEM003", RackNumber: "A2-001"}},
			},
			{
				ISBN: "978-0201633610", Title: "Design Patterns", Author: "Gang of Four",
				Subject: "Programming", Published: "1994-10-31",
				Copies: []SeedCopy{{ItemID: "ITEM004", RackNumber: "A3-001"}},
			},
		},
		Members: []SeedMember{
			{MemberID: "MEM001", Name: "Alice Johnson", Address: "123 Main St"},
			{MemberID: "MEM002", Name: "Bob Smith", Address: "456 Oak Ave"},
		},
	}
}
