package catalog

import "fmt"

type Product struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Type      Category `json:"type"`
	Inventory int      `json:"inventory"`
	Cost      float64  `json:"cost"`
}

// Store holds products keyed by id. Absence is reported, never raised.
type Store interface {
	// Insert adds p, silently replacing any product with the same id.
	Insert(p Product)
	Fetch(id int) (Product, bool)
	// List returns every product ordered by ascending id.
	List() []Product
	// Remove deletes id; removing an absent id is a no-op.
	Remove(id int)
	Size() int
	// Create assigns p an id and inserts it atomically, returning the stored product.
	Create(p Product) Product
}

// IDFunc derives the id of a new product from the current store size and
// the highest id the store has ever held.
type IDFunc func(size, highest int) int

// SizeIDs assigns size+1. After a removal the next id can collide with a
// stored product, which Insert then overwrites.
func SizeIDs(size, _ int) int { return size + 1 }

// SequenceIDs assigns strictly increasing ids that are never reused.
func SequenceIDs(_, highest int) int { return highest + 1 }

const (
	IDsSize     = "size"
	IDsSequence = "sequence"
)

func IDsByName(name string) (IDFunc, error) {
	switch name {
	case "", IDsSize:
		return SizeIDs, nil
	case IDsSequence:
		return SequenceIDs, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", name)
	}
}
