// Package hashing detects repeated positions by Zobrist hash.
package hashing

import (
	"github.com/lgbarn/chessboard-go/internal/chess"
)

// DuplicateDetector remembers positions it has seen and reports repeats.
// It is not safe for concurrent use.
type DuplicateDetector struct {
	// hashTable maps a position hash to every signature seen under it
	hashTable map[uint64][]Signature
	// matchPlies also requires the same number of plies played
	matchPlies bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// Signature identifies one recorded position.
type Signature struct {
	// Hash is the Zobrist hash of the position
	Hash uint64
	// Index is the caller's identifier for whoever reached the position
	Index int
	// Plies is how many moves led to the position
	Plies int
}

// NewDuplicateDetector creates a new duplicate detector. With matchPlies
// set, two positions only count as duplicates if they were reached after
// the same number of moves.
func NewDuplicateDetector(matchPlies bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:  make(map[uint64][]Signature),
		matchPlies: matchPlies,
	}
}

// CheckAndAdd records pos under index. If an equal position was recorded
// before, it returns that signature and true, and pos is not recorded again.
func (d *DuplicateDetector) CheckAndAdd(pos chess.Position, index, plies int) (Signature, bool) {
	sig := Signature{Hash: Hash(pos), Index: index, Plies: plies}

	for _, seen := range d.hashTable[sig.Hash] {
		if d.matches(sig, seen) {
			d.duplicateCount++
			return seen, true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return Signature{}, false
}

func (d *DuplicateDetector) matches(a, b Signature) bool {
	if a.Hash != b.Hash {
		return false
	}
	return !d.matchPlies || a.Plies == b.Plies
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}
