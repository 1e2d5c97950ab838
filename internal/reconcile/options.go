package reconcile

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/internal/platform/logging"
)

// Preference reports whether incoming should replace kept when both share an identity.
type Preference[T Record] func(kept, incoming T) bool

// MergeFunc combines the winning record with the one it displaced.
type MergeFunc[T Record] func(winner, loser T) T

// CompareFunc orders two records like cmp.Compare.
type CompareFunc[T Record] func(a, b T) int

type options[T Record] struct {
	identity Identity[T]
	prefer   Preference[T]
	merge    MergeFunc[T]
	compare  CompareFunc[T]
	logger   *logging.Logger
}

func defaultOptions[T Record]() *options[T] {
	return &options[T]{
		identity: CompetitionNames[T](),
		prefer:   FirstSeen[T],
		compare:  ByName[T],
		logger:   logging.Default(),
	}
}

// Option configures a Reconciler.
type Option[T Record] func(*options[T]) error

func (o *options[T]) apply(opts ...Option[T]) (*options[T], error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithIdentity sets the identity policy.
func WithIdentity[T Record](identity Identity[T]) Option[T] {
	return func(o *options[T]) error {
		if identity == nil {
			return crerr.New("reconcile: identity cannot be nil")
		}
		o.identity = identity
		return nil
	}
}

// WithPreference sets the rule deciding whether a duplicate replaces the kept record.
func WithPreference[T Record](prefer Preference[T]) Option[T] {
	return func(o *options[T]) error {
		if prefer == nil {
			return crerr.New("reconcile: preference cannot be nil")
		}
		o.prefer = prefer
		return nil
	}
}

// WithMerge enables field-level merging of duplicates. Without it the winner
// replaces the kept record wholesale.
func WithMerge[T Record](merge MergeFunc[T]) Option[T] {
	return func(o *options[T]) error {
		o.merge = merge
		return nil
	}
}

// WithSort sets the output order. A nil compare keeps merge order.
func WithSort[T Record](compare CompareFunc[T]) Option[T] {
	return func(o *options[T]) error {
		o.compare = compare
		return nil
	}
}

func WithLogger[T Record](logger *logging.Logger) Option[T] {
	return func(o *options[T]) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// FirstSeen never replaces a kept record.
func FirstSeen[T Record](_, _ T) bool {
	return false
}
