// Package registry keeps the mapping from displayed hotel rows back to bookable offers.
package registry

import (
	jsonEncoding "encoding/json"
	"errors"
	"sort"
)

// ErrSelectionInvalid is returned for a row index the current registry does not hold.
var ErrSelectionInvalid = errors.New("selection no longer valid")

// Entry is the offer behind one row. Offer is the raw offer exactly as the service sent it.
type Entry struct {
	OfferID string                   `json:"offerId"`
	Offer   jsonEncoding.RawMessage `json:"offer"`
}

// Registry maps row indexes of one result set to their offers.
type Registry struct {
	entries map[int]Entry
}

func New() *Registry {
	return &Registry{entries: map[int]Entry{}}
}

func (r *Registry) Put(rowIndex int, offerID string, offer jsonEncoding.RawMessage) {
	r.entries[rowIndex] = Entry{
		OfferID: offerID,
		Offer:   offer,
	}
}

func (r *Registry) Get(rowIndex int) (Entry, error) {
	if r == nil {
		return Entry{}, ErrSelectionInvalid
	}

	entry, ok := r.entries[rowIndex]
	if !ok {
		return Entry{}, ErrSelectionInvalid
	}

	return entry, nil
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.entries)
}

// Indexes returns the registered row indexes in ascending order.
func (r *Registry) Indexes() []int {
	indexes := make([]int, 0, r.Len())
	if r == nil {
		return indexes
	}

	for index := range r.entries {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	return indexes
}

func (r *Registry) clone() *Registry {
	cloned := New()
	if r == nil {
		return cloned
	}

	for index, entry := range r.entries {
		cloned.entries[index] = entry
	}

	return cloned
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	return jsonEncoding.Marshal(r.entries)
}

func (r *Registry) UnmarshalJSON(data []byte) error {
	entries := map[int]Entry{}
	if err := jsonEncoding.Unmarshal(data, &entries); err != nil {
		return err
	}

	r.entries = entries

	return nil
}
