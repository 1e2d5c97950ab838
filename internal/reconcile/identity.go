package reconcile

// Identity decides which records denote the same real-world entity. Each Run
// asks for a fresh Index so identities carry no state between runs.
type Identity[T Record] interface {
	NewIndex() Index[T]
}

// Index tracks the records kept so far. rank is the position of the record's
// batch; slot is its position in the merged output.
type Index[T Record] interface {
	Find(rec T, rank int) (slot int, ok bool)
	Add(rec T, rank int, slot int)
}

// KeyIdentity treats records with equal keys as the same entity, whatever
// source they came from.
type KeyIdentity[T Record] struct {
	Key func(T) string
}

func (k KeyIdentity[T]) NewIndex() Index[T] {
	return &keyIndex[T]{key: k.Key, slots: make(map[string]int)}
}

type keyIndex[T Record] struct {
	key   func(T) string
	slots map[string]int
}

func (i *keyIndex[T]) Find(rec T, _ int) (int, bool) {
	slot, ok := i.slots[i.key(rec)]
	return slot, ok
}

func (i *keyIndex[T]) Add(rec T, _ int, slot int) {
	key := i.key(rec)
	if _, exists := i.slots[key]; !exists {
		i.slots[key] = slot
	}
}

// NameIdentity matches a record against kept records of higher-priority
// batches whose normalized names overlap. Records of the same batch are never
// compared with each other.
type NameIdentity[T Record] struct {
	Tokens  func(string) []string
	Overlap func(a, b []string) bool
}

// CompetitionNames is the default competition identity.
func CompetitionNames[T Record]() NameIdentity[T] {
	return NameIdentity[T]{Tokens: NameTokens, Overlap: NamesOverlap}
}

func (n NameIdentity[T]) NewIndex() Index[T] {
	tokens, overlap := n.Tokens, n.Overlap
	if tokens == nil {
		tokens = NameTokens
	}
	if overlap == nil {
		overlap = NamesOverlap
	}
	return &nameIndex[T]{tokens: tokens, overlap: overlap}
}

type nameEntry struct {
	tokens []string
	rank   int
	slot   int
}

type nameIndex[T Record] struct {
	tokens  func(string) []string
	overlap func(a, b []string) bool
	entries []nameEntry
}

func (i *nameIndex[T]) Find(rec T, rank int) (int, bool) {
	tokens := i.tokens(nameOf(rec))
	if len(tokens) == 0 {
		return 0, false
	}
	for _, entry := range i.entries {
		if entry.rank >= rank {
			continue
		}
		if i.overlap(entry.tokens, tokens) {
			return entry.slot, true
		}
	}
	return 0, false
}

func (i *nameIndex[T]) Add(rec T, rank int, slot int) {
	i.entries = append(i.entries, nameEntry{tokens: i.tokens(nameOf(rec)), rank: rank, slot: slot})
}
