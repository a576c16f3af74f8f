package disjoint_set

import (
	"encoding/json"
	"fmt"
)

type state struct {
	Labels []int `json:"labels"`
	Sizes  []int `json:"sizes,omitempty"`
}

func decodeState(data []byte) (*state, error) {
	var temp state
	if err := json.Unmarshal(data, &temp); err != nil {
		return nil, err
	}
	if len(temp.Labels) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrCorruptState)
	}
	return &temp, nil
}

// MarshalJSON implements json.Marshaler interface
func (uf *QuickFind) MarshalJSON() ([]byte, error) {
	return json.Marshal(state{Labels: uf.ids})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (uf *QuickFind) UnmarshalJSON(data []byte) error {
	temp, err := decodeState(data)
	if err != nil {
		return err
	}

	n := len(temp.Labels)
	tags := make(map[int]struct{})
	for i, id := range temp.Labels {
		if id < 0 || id >= n {
			return fmt.Errorf("%w: tag of %d is %d, outside [0, %d)", ErrCorruptState, i, id, n)
		}
		tags[id] = struct{}{}
	}

	uf.ids = temp.Labels
	uf.count = len(tags)
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (uf *QuickUnion) MarshalJSON() ([]byte, error) {
	return json.Marshal(state{Labels: uf.parent})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (uf *QuickUnion) UnmarshalJSON(data []byte) error {
	temp, err := decodeState(data)
	if err != nil {
		return err
	}

	_, count, err := CheckForest(temp.Labels)
	if err != nil {
		return err
	}

	uf.parent = temp.Labels
	uf.count = count
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (uf *Weighted) MarshalJSON() ([]byte, error) {
	return json.Marshal(state{Labels: uf.parent, Sizes: uf.size})
}

// UnmarshalJSON implements json.Unmarshaler interface. Sizes are recomputed
// from the forest and must agree with the stored sizes at every root.
func (uf *Weighted) UnmarshalJSON(data []byte) error {
	temp, err := decodeState(data)
	if err != nil {
		return err
	}

	count, err := CheckSizes(temp.Labels, temp.Sizes)
	if err != nil {
		return err
	}

	uf.parent = temp.Labels
	uf.size = temp.Sizes
	uf.count = count
	return nil
}
