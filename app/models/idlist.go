package models

import "encoding/json"

// IDList is the "one id or a non-empty list of ids" shape used by
// attributesValueId on the wire. It accepts both `"656a..."` and
// `["656a...", ...]` and always normalizes to a list, so everything past
// the decode boundary handles one shape only.
type IDList []string

func (l *IDList) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*l = IDList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = IDList(many)
	return nil
}

// MarshalJSON always emits the list form.
func (l IDList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}
