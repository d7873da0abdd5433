package bloom

// FilterSet decorates a backing set of strings with a Filter that
// short-circuits negative membership and subset queries. The set is
// append-only: elements can never be removed, because clearing a bit the
// filter shares between elements would break the no-false-negative
// guarantee for the others.
type FilterSet struct {
	filter *Filter
	items  map[string]struct{}
}

// NewFilterSet creates an empty FilterSet using an in-memory filter built
// from config.
func NewFilterSet(config *HashConfig) *FilterSet {
	return &FilterSet{
		filter: config.Empty(),
		items:  make(map[string]struct{}),
	}
}

// Add inserts element, reporting whether the set changed.
func (s *FilterSet) Add(element string) bool {
	s.filter.AddString(element)
	if _, ok := s.items[element]; ok {
		return false
	}
	s.items[element] = struct{}{}
	return true
}

// AddAll inserts every element, reporting whether the set changed.
func (s *FilterSet) AddAll(elements ...string) bool {
	changed := false
	for _, element := range elements {
		if s.Add(element) {
			changed = true
		}
	}
	return changed
}

// Contains checks the filter first and consults the backing set only when
// the filter cannot rule the element out.
func (s *FilterSet) Contains(element string) bool {
	if !s.filter.ContainsString(element) {
		return false
	}
	_, ok := s.items[element]
	return ok
}

// ContainsAll reports whether every element of other is present. The
// filters are compared first, so sets that visibly miss bits are rejected
// without touching the backing sets. Both sets must share a structurally
// equal configuration.
func (s *FilterSet) ContainsAll(other *FilterSet) (bool, error) {
	ok, err := s.filter.ContainsFilter(other.filter)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	for element := range other.items {
		if _, ok := s.items[element]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Remove always fails with ErrRemoveUnsupported.
func (s *FilterSet) Remove(element string) error {
	return ErrRemoveUnsupported
}

// Clear empties the backing set and zeroes the filter.
func (s *FilterSet) Clear() {
	s.filter.Clear()
	s.items = make(map[string]struct{})
}

// Len returns the number of elements.
func (s *FilterSet) Len() int {
	return len(s.items)
}

// Elements returns the elements in unspecified order.
func (s *FilterSet) Elements() []string {
	out := make([]string, 0, len(s.items))
	for element := range s.items {
		out = append(out, element)
	}
	return out
}

// Filter exposes the gating filter, e.g. for export.
func (s *FilterSet) Filter() *Filter {
	return s.filter
}

// Equals compares the filters first, then the backing sets. Both sets must
// share a structurally equal configuration.
func (s *FilterSet) Equals(other *FilterSet) (bool, error) {
	ok, err := s.filter.Equals(other.filter)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if len(s.items) != len(other.items) {
		return false, nil
	}
	for element := range s.items {
		if _, ok := other.items[element]; !ok {
			return false, nil
		}
	}
	return true, nil
}
