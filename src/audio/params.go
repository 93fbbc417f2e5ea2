package audio

import (
	"encoding/json"
	"fmt"
)

// Params is a read-only view of the engine settings.
type Params struct {
	TableSize     int
	Interpolation Interpolation
	Envelope      bool
	AttackMs      float64
	DecayMs       float64
	SampleRate    float64
}

type paramsJSON struct {
	TableSize int     `json:"tableSize"`
	Interp    string  `json:"interp"`
	Envelope  bool    `json:"envelope"`
	AttackMs  float64 `json:"attackMs"`
	DecayMs   float64 `json:"decayMs"`
}

func (p *Params) toJSON() json.RawMessage {
	return toRawMessage(&paramsJSON{
		TableSize: p.TableSize,
		Interp:    p.Interpolation.String(),
		Envelope:  p.Envelope,
		AttackMs:  p.AttackMs,
		DecayMs:   p.DecayMs,
	})
}

func toRawMessage(v interface{}) json.RawMessage {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return json.RawMessage(bytes)
}

// ToJSON ...
func (e *Engine) ToJSON() []byte {
	p := e.Params()
	return p.toJSON()
}

// ApplyJSON validates every field first and installs them together, so a bad
// document changes nothing. A new table size discards the captured table.
func (e *Engine) ApplyJSON(data []byte) error {
	var j paramsJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	mode, err := ParseInterpolation(j.Interp)
	if err != nil {
		return err
	}
	if err := validMillis(j.AttackMs); err != nil {
		return err
	}
	if err := validMillis(j.DecayMs); err != nil {
		return err
	}
	return e.update(func(c *config) error {
		table, err := c.table.resize(j.TableSize)
		if err != nil {
			return err
		}
		c.table = table
		c.interp = mode
		c.follower.enabled = j.Envelope
		c.follower.attackMs = j.AttackMs
		c.follower.decayMs = j.DecayMs
		c.recomputeFollower()
		return nil
	})
}
