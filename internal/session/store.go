package session

import (
	"sort"

	"ReceiptLedger/internal/domain"
)

// Store is the deduplicating accumulation set for one session. Records are
// kept in insertion order; identity keys already seen are skipped on upsert.
// It lives for the process lifetime only and is mutated by a single caller,
// so no locking is required.
type Store struct {
	records []domain.LineItemRecord
	seen    map[string]struct{}
}

// NewStore builds an empty session store.
func NewStore() *Store {
	return &Store{seen: map[string]struct{}{}}
}

// Upsert appends records whose identity key has not been seen before and
// returns how many were newly added. Duplicates are a no-op, not an error.
func (s *Store) Upsert(records []domain.LineItemRecord) int {
	added := 0
	for _, r := range records {
		key := r.IdentityKey()
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.records = append(s.records, r)
		added++
	}
	return added
}

// Clear resets both the record sequence and the seen-set.
func (s *Store) Clear() {
	s.records = nil
	s.seen = map[string]struct{}{}
}

// Len reports the number of accumulated records.
func (s *Store) Len() int {
	return len(s.records)
}

// Sorted returns a copy of the records ordered by parsed date ascending.
// Records with unparseable dates sort last; ties keep insertion order.
func (s *Store) Sorted() []domain.LineItemRecord {
	out := make([]domain.LineItemRecord, len(s.records))
	copy(out, s.records)

	type key struct {
		t  int64
		ok bool
	}
	keys := make([]key, len(out))
	for i, r := range out {
		t, ok := ParseDate(r.Date)
		keys[i] = key{t: t.UnixNano(), ok: ok}
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return ka.t < kb.t
	})

	sorted := make([]domain.LineItemRecord, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
