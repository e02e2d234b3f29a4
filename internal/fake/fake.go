// Package fake is a pure, deterministic library of "plausible looking" data.
// Every lookup table has exactly 12 entries and every lookup is a `seed mod
// 12` indexing operation, so the package never errors and never allocates
// randomness — the illusion of variety comes entirely from the caller's
// seed.
//
// The exact tables and offsets here are pinned to the reference
// implementation (see DESIGN.md) so that output is reproducible across
// rebuilds of this server, not just within one running process.
package fake

import "fmt"

const tableSize = 12

var firstNames = [tableSize]string{
	"Facundo", "Lucca", "Maximo", "Juan", "Pedro", "Maria",
	"Jose", "Lucia", "Carlos", "Julieta", "Martin", "Agustina",
}

var lastNames = [tableSize]string{
	"Villa", "Salerno", "Alvarez", "Martinez", "Perez", "Sanchez",
	"Romero", "Suarez", "Vazquez", "Rojas", "Acosta", "Blanco",
}

var adjectives = [tableSize]string{
	"crazy", "rambunctious", "happy", "sassy", "creepy", "sexy",
	"cool", "tubular", "radical", "intriguing", "boring", "lame",
}

var roles = [tableSize]string{
	"superadmin", "admin", "editor", "author", "contributor", "subscriber",
	"customer", "guest", "visitor", "banned", "pending", "deleted",
}

// field is one row of the FIELDS table: a field name paired with its own
// 12-entry value table.
type field struct {
	name   string
	values [tableSize]string
}

var fields = [tableSize]field{
	{name: "first_name", values: firstNames},
	{name: "last_name", values: lastNames},
	{name: "email", values: [tableSize]string{
		"a@email.com", "b@email.com", "c@email.com", "d@email.com",
		"e@email.com", "f@email.com", "g@email.com", "h@email.com",
		"i@email.com", "j@email.com", "k@email.com", "l@email.com",
	}},
	{name: "phone", values: [tableSize]string{
		"1234567890", "2345678901", "3456789012", "4567890123",
		"5678901234", "6789012345", "7890123456", "8901234567",
		"9012345678", "0123456789", "1234567890", "2345678901",
	}},
	{name: "address", values: [tableSize]string{
		"123 Fake St", "456 Fake St", "789 Fake St", "012 Fake St",
		"345 Fake St", "678 Fake St", "901 Fake St", "234 Fake St",
		"567 Fake St", "890 Fake St", "123 Fake St", "456 Fake St",
	}},
	{name: "city", values: [tableSize]string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville",
	}},
	{name: "state", values: [tableSize]string{
		"NY", "CA", "IL", "TX", "AZ", "PA", "TX", "CA", "TX", "CA", "TX", "FL",
	}},
	{name: "zip", values: [tableSize]string{
		"12345", "23456", "34567", "45678", "56789", "67890",
		"78901", "89012", "90123", "01234", "12345", "23456",
	}},
	{name: "country", values: [tableSize]string{
		"USA", "USA", "USA", "USA", "USA", "USA",
		"USA", "USA", "USA", "USA", "USA", "USA",
	}},
	{name: "company", values: [tableSize]string{
		"Apple", "Google", "Microsoft", "Amazon", "Facebook", "Twitter",
		"Uber", "Lyft", "Airbnb", "Netflix", "Spotify", "Slack",
	}},
	{name: "job", values: [tableSize]string{
		"Software Engineer", "Product Manager", "Designer", "Data Scientist",
		"Sales", "Marketing", "Customer Support", "HR", "Finance",
		"Operations", "Legal", "Security",
	}},
	{name: "age", values: [tableSize]string{
		"20", "21", "22", "23", "24", "25", "26", "27", "28", "29", "30", "31",
	}},
}

// idx folds a (possibly huge, possibly negative if cast from a two's
// complement wraparound) seed into [0, tableSize) without panicking.
func idx(seed uint64) int {
	return int(seed % tableSize)
}

// FirstName returns one of 12 deterministic first names.
func FirstName(seed uint64) string {
	return firstNames[idx(seed)]
}

// LastName returns one of 12 deterministic last names.
func LastName(seed uint64) string {
	return lastNames[idx(seed)]
}

// Adjective returns one of 12 deterministic adjectives.
func Adjective(seed uint64) string {
	return adjectives[idx(seed)]
}

// Role returns one of 12 deterministic role names.
func Role(seed uint64) string {
	return roles[idx(seed)]
}

// FullName renders a name shaped like "First Last", "First LastA Last", or
// "First LastA Last LastC" depending on the parity and divisibility of
// seed. Ties are broken in this order: even seeds always take the
// two-token form; only then is the odd-and-divisible-by-three case
// checked.
func FullName(seed uint64) string {
	first := FirstName(seed)

	switch {
	case seed%2 == 0:
		return fmt.Sprintf("%s %s", first, LastName(seed))
	case seed%3 == 0:
		return fmt.Sprintf("%s %s %s %s", first, LastName(seed+1), LastName(seed), LastName(seed+2))
	default:
		return fmt.Sprintf("%s %s %s", first, LastName(seed+1), LastName(seed))
	}
}

// FieldName returns the name of one of the 12 rows in the FIELDS table.
func FieldName(seed uint64) string {
	return fields[idx(seed)].name
}

// FieldValue returns a plausible value for the FIELDS row selected by seed.
// The row and the value within the row are selected with the same seed, so
// "FIELD.name" and "FIELD.value" rendered from the same hashed key are
// always consistent with each other.
func FieldValue(seed uint64) string {
	row := fields[idx(seed)]
	return row.values[idx(seed)]
}

// hexOffsets gives the seed offset added before taking `% 16` for each of
// the 27 freely-chosen hex digits of a UUIDv4-shaped string, in left-to-
// right order skipping the fixed "4" that opens the third group. The
// values are pinned exactly to the reference implementation so two builds
// of this server produce byte-identical UUIDs for the same seed.
var hexOffsets = [27]uint64{
	0, 18, 3, 99, 2, 18, 6, 7, // group 1 (8 digits)
	19, 9, 36, 23, // group 2 (4 digits)
	12, 11, 14, // group 3, after the fixed "4" (3 digits)
	15, 13, 17, 12, 9, 20, 21, 22, 5, 24, 25, 16, // group 4 (12 digits)
}

const hexDigits = "0123456789abcdef"

func hexChar(seed uint64) byte {
	return hexDigits[seed%16]
}

// UUIDv4 formats a string visually shaped like a version-4 UUID
// (xxxxxxxx-xxxx-4xxx-xxxxxxxxxxxx). It does not set the variant bits and
// is not suitable as a real identifier; it exists purely so that
// "${this.id::UUID}"-style fields look plausible.
func UUIDv4(seed uint64) string {
	buf := make([]byte, 0, 31)
	pos := 0

	appendHex := func(n int) {
		for i := 0; i < n; i++ {
			buf = append(buf, hexChar(seed+hexOffsets[pos]))
			pos++
		}
	}

	appendHex(8)
	buf = append(buf, '-')
	appendHex(4)
	buf = append(buf, '-', '4')
	appendHex(3)
	buf = append(buf, '-')
	appendHex(12)

	return string(buf)
}
