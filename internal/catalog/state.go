package catalog

import (
	"github.com/Almas2004/led/internal/models"
)

// State is the mutable filter state behind the catalog sidebar.
// It is not safe for concurrent use.
type State struct {
	typ      models.ScreenType
	purposes []string
	pitches  []string
	maxPrice float64
}

// NewState returns a state for t with no facets selected.
func NewState(t models.ScreenType) *State {
	if !t.Valid() {
		t = models.ScreenIndoor
	}
	return &State{typ: t, maxPrice: DefaultMaxPrice}
}

// Type returns the selected screen type.
func (s *State) Type() models.ScreenType { return s.typ }

// MaxPrice returns the price ceiling.
func (s *State) MaxPrice() float64 { return s.maxPrice }

// SelectedPurposes returns the selected purpose tags in selection order.
func (s *State) SelectedPurposes() []string { return append([]string(nil), s.purposes...) }

// SelectedPitches returns the selected pitches in selection order.
func (s *State) SelectedPitches() []string { return append([]string(nil), s.pitches...) }

// AvailablePitches returns the pitch options for the current type.
func (s *State) AvailablePitches() []string { return PitchOptions(s.typ) }

// SetType switches the screen type and drops pitch selections that do not
// exist in the new type's catalog. It returns the dropped pitches.
func (s *State) SetType(t models.ScreenType) []string {
	if !t.Valid() || t == s.typ {
		return nil
	}
	s.typ = t
	kept := s.pitches[:0:0]
	var dropped []string
	for _, p := range s.pitches {
		if IsValidPitch(t, p) {
			kept = append(kept, p)
		} else {
			dropped = append(dropped, p)
		}
	}
	s.pitches = kept
	return dropped
}

// TogglePurpose adds or removes a purpose tag.
func (s *State) TogglePurpose(tag string) {
	s.purposes = toggle(s.purposes, tag)
}

// TogglePitch adds or removes a pitch. Pitches outside the current type's
// catalog are rejected and false is returned.
func (s *State) TogglePitch(pitch string) bool {
	if !IsValidPitch(s.typ, pitch) {
		return false
	}
	s.pitches = toggle(s.pitches, pitch)
	return true
}

// SetMaxPrice sets the price ceiling.
func (s *State) SetMaxPrice(v float64) {
	s.maxPrice = v
}

// Reset clears the facets and restores the default ceiling. The type is kept.
func (s *State) Reset() {
	s.purposes = nil
	s.pitches = nil
	s.maxPrice = DefaultMaxPrice
}

// Filter returns a snapshot usable with Apply.
func (s *State) Filter() Filter {
	return Filter{
		Type:     s.typ,
		Purposes: s.SelectedPurposes(),
		Pitches:  s.SelectedPitches(),
		MaxPrice: s.maxPrice,
	}
}

func toggle(list []string, v string) []string {
	for i, x := range list {
		if x == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}
