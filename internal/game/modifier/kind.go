package modifier

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which combinator a modifier uses.
// The zero value (KindUnknown) is intentionally invalid.
type Kind int

const (
	KindUnknown          Kind = iota // zero value; intentionally invalid
	KindSkillAgility                 // percent agility buff, highest single value wins
	KindBBAgility                    // percent agility buff, independent channel from skill
	KindHeavyPressure                // flat -30% agility flag, never stacks
	KindActionValueDelta             // one-shot absolute action value change
)

// Kinds lists every valid Kind in declaration order.
var Kinds = []Kind{KindSkillAgility, KindBBAgility, KindHeavyPressure, KindActionValueDelta}

var kindNames = map[Kind]string{
	KindSkillAgility:     "agility_buff_skill",
	KindBBAgility:        "agility_buff_bb",
	KindHeavyPressure:    "agility_debuff_heavy_pressure",
	KindActionValueDelta: "action_value_delta",
}

// String returns the wire name of the Kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsAgility reports whether k alters effective agility rather than action value.
func (k Kind) IsAgility() bool {
	switch k {
	case KindSkillAgility, KindBBAgility, KindHeavyPressure:
		return true
	default:
		return false
	}
}

// ParseKind converts a wire name into a Kind.
//
// Postcondition: Returns a valid Kind or a non-nil error.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown modifier kind %q", s)
}

// MarshalYAML encodes the Kind as its wire name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a wire name into the Kind.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// DurationUnit is how an instance's remaining duration is measured.
// The zero value means "not specified" and is resolved by Template.Normalize.
type DurationUnit int

const (
	DurationUnspecified DurationUnit = iota
	PerAction                        // counted in the target's own actions
	PerCalculation                   // counted in steps; always one-shot
)

// String returns the wire name of the DurationUnit.
func (u DurationUnit) String() string {
	switch u {
	case PerAction:
		return "per_action"
	case PerCalculation:
		return "per_calculation"
	default:
		return "unspecified"
	}
}

// MarshalYAML encodes the DurationUnit as its wire name.
func (u DurationUnit) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

// UnmarshalYAML decodes "per_action" or "per_calculation".
func (u *DurationUnit) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "per_action":
		*u = PerAction
	case "per_calculation":
		*u = PerCalculation
	case "":
		*u = DurationUnspecified
	default:
		return fmt.Errorf("line %d: unknown duration unit %q", value.Line, s)
	}
	return nil
}

// Polarity classifies an applied modifier for result highlighting.
// Values are ordered so that the larger one wins when merged.
type Polarity int

const (
	PolarityNone Polarity = iota
	PolarityBuff
	PolarityDebuff
)

// PolarityOf returns the highlight polarity of a modifier of kind k with the
// given magnitude. Heavy pressure and any negative magnitude are debuffs.
func PolarityOf(k Kind, magnitude int) Polarity {
	if k == KindHeavyPressure || magnitude < 0 {
		return PolarityDebuff
	}
	return PolarityBuff
}

// Merge combines two polarities observed in the same step; debuff wins over buff.
func (p Polarity) Merge(q Polarity) Polarity {
	if q > p {
		return q
	}
	return p
}

// String returns "none", "buff" or "debuff".
func (p Polarity) String() string {
	switch p {
	case PolarityBuff:
		return "buff"
	case PolarityDebuff:
		return "debuff"
	default:
		return "none"
	}
}

// MarshalYAML encodes the Polarity as its name.
func (p Polarity) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
