package domain

// SlotSet is the set of slot labels already booked for a single date, as
// returned by the store. It is never cached beyond the current date
// selection: the widget re-fetches on every date change and again right
// before a commit.
type SlotSet map[string]struct{}

// NewSlotSet builds a set from a list of booked slot labels
func NewSlotSet(labels []string) SlotSet {
	set := make(SlotSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Contains reports whether the label is booked
func (s SlotSet) Contains(label string) bool {
	_, ok := s[label]
	return ok
}
