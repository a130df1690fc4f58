package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Patch persistence. A Timbre serializes to JSON:
//
//	{"amp":[0.5],"waves":[{"waveform":"Sine","freq":[1],"amp":[0.5]}]}
//
// Early patches wrote freq as a bare number; UnmarshalJSON still
// accepts that form, and saving always writes the array form.

// UnmarshalJSON decodes a wave, accepting both the scalar and the
// array form of the freq field.
func (w *Wave) UnmarshalJSON(data []byte) error {
	var aux struct {
		Waveform Waveform        `json:"waveform"`
		Freq     json.RawMessage `json:"freq"`
		Amp      Curve           `json:"amp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	w.Waveform = aux.Waveform
	w.Amp = aux.Amp
	w.Freq = nil
	if len(aux.Freq) == 0 {
		return nil
	}
	var scalar float32
	if err := json.Unmarshal(aux.Freq, &scalar); err == nil {
		w.Freq = Curve{scalar}
		return nil
	}
	if err := json.Unmarshal(aux.Freq, &w.Freq); err != nil {
		return fmt.Errorf("wave freq: %w", err)
	}
	return nil
}

// Validate checks the non-empty-curve invariants a usable patch must
// hold.
func (t *Timbre) Validate() error {
	if len(t.Amp) == 0 {
		return errors.New("master amp curve has no points")
	}
	for i := range t.Waves {
		if len(t.Waves[i].Freq) == 0 {
			return fmt.Errorf("wave %d: freq curve has no points", i)
		}
		if len(t.Waves[i].Amp) == 0 {
			return fmt.Errorf("wave %d: amp curve has no points", i)
		}
	}
	return nil
}

// ParseTimbre decodes and validates a patch document. It returns an
// error for anything malformed, leaving the caller's current state
// untouched.
func ParseTimbre(data []byte) (Timbre, error) {
	var t Timbre
	if err := json.Unmarshal(data, &t); err != nil {
		return Timbre{}, fmt.Errorf("parsing patch: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Timbre{}, fmt.Errorf("invalid patch: %w", err)
	}
	return t, nil
}

// Encode serializes the patch for saving.
func (t *Timbre) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// LoadFile reads and parses a patch file.
func LoadFile(path string) (Timbre, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timbre{}, fmt.Errorf("reading patch: %w", err)
	}
	return ParseTimbre(data)
}

// SaveFile writes the patch to path.
func (t *Timbre) SaveFile(path string) error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encoding patch: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing patch: %w", err)
	}
	return nil
}
