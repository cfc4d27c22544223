package modifier

import "fmt"

const (
	// BaselineGain is the fixed action value every unit gains per step on top
	// of its agility.
	BaselineGain = 100
	// HeavyPressurePercent is the agility change applied while any heavy
	// pressure instance is live.
	HeavyPressurePercent = -30
)

// Instance is a Template expanded for exactly one target unit.
type Instance struct {
	TemplateID   string
	Kind         Kind
	Magnitude    int
	DurationUnit DurationUnit
	SourceID     string
	TriggerStep  int
	// Remaining counts down; the instance is live while Remaining > 0.
	Remaining int
	// AppliedAtActionCount is the target's action count when the instance was attached.
	AppliedAtActionCount int
}

// Live reports whether the instance still has duration left.
func (i *Instance) Live() bool { return i.Remaining > 0 }

// Order maps a unit id to its position in the current step's acting order.
// It is built once per step and queried by every EffectiveAgility call.
type Order map[string]int

// NewOrder builds an Order from ids listed in acting order.
//
// Postcondition: Position(ids[i]) == i for every i.
func NewOrder(ids []string) Order {
	o := make(Order, len(ids))
	for i, id := range ids {
		o[id] = i
	}
	return o
}

// Position returns the acting position of id, or (0, false) if id is not acting.
func (o Order) Position(id string) (int, bool) {
	p, ok := o[id]
	return p, ok
}

// Channels is the per-step breakdown of percent agility modifiers on one unit.
type Channels struct {
	SkillPercent         int
	BBPercent            int
	HeavyPressurePercent int
}

// Contribution returns the total agility delta the channels add to base.
// Each channel is floored independently.
func (c Channels) Contribution(base int) int {
	return percentOf(base, c.SkillPercent) +
		percentOf(base, c.BBPercent) +
		percentOf(base, c.HeavyPressurePercent)
}

// percentOf returns floor(base * pct / 100), rounding toward negative infinity.
func percentOf(base, pct int) int {
	n := base * pct
	q := n / 100
	if n%100 != 0 && n < 0 {
		q--
	}
	return q
}

// ActiveSet tracks all modifier instances attached to one unit.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	ownerID   string
	instances []*Instance
}

// NewActiveSet creates an empty ActiveSet owned by the unit with ownerID.
func NewActiveSet(ownerID string) *ActiveSet {
	return &ActiveSet{ownerID: ownerID}
}

// Attach adds inst to the set. Instances keep attachment order.
//
// Precondition: inst must not be nil and must not belong to another set.
func (s *ActiveSet) Attach(inst *Instance) {
	s.instances = append(s.instances, inst)
}

// Len returns the number of attached instances, live or not.
func (s *ActiveSet) Len() int { return len(s.instances) }

// All returns the attached instances in attachment order.
// The slice is a new allocation but the instances are shared; callers must not modify them.
func (s *ActiveSet) All() []*Instance {
	out := make([]*Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// Channels computes the percent channels visible to the owner at step.
//
// Same-kind buffs take the highest single value. Heavy pressure is a flag.
// A source-gated per-action instance attached at this step is suppressed when
// its target acts before its source in order.
func (s *ActiveSet) Channels(step int, order Order) Channels {
	var c Channels
	for _, inst := range s.instances {
		if !inst.Live() || s.suppressed(inst, step, order) {
			continue
		}
		switch inst.Kind {
		case KindSkillAgility:
			c.SkillPercent = max(c.SkillPercent, inst.Magnitude)
		case KindBBAgility:
			c.BBPercent = max(c.BBPercent, inst.Magnitude)
		case KindHeavyPressure:
			c.HeavyPressurePercent = HeavyPressurePercent
		case KindActionValueDelta:
			// applied to action value at expansion; no agility effect
		default:
			panic(fmt.Sprintf("modifier: unhandled kind %d", inst.Kind))
		}
	}
	return c
}

func (s *ActiveSet) suppressed(inst *Instance, step int, order Order) bool {
	if inst.DurationUnit != PerAction || inst.SourceID == "" || inst.TriggerStep != step {
		return false
	}
	targetPos, targetActs := order.Position(s.ownerID)
	sourcePos, sourceActs := order.Position(inst.SourceID)
	return targetActs && sourceActs && targetPos < sourcePos
}

// EffectiveAgility returns the action value the owner gains at step.
//
// Postcondition: Returns max(1, base + channel contributions) + BaselineGain.
func (s *ActiveSet) EffectiveAgility(base, step int, order Order) int {
	agility := base + s.Channels(step, order).Contribution(base)
	return max(1, agility) + BaselineGain
}

// DecrementOnAction is called after the owner acts, with its post-action count.
// Each live per-action instance loses one duration, but only when the owner
// has acted since the instance was attached.
func (s *ActiveSet) DecrementOnAction(actionCount int) {
	for _, inst := range s.instances {
		if inst.DurationUnit != PerAction || !inst.Live() {
			continue
		}
		if actionCount > inst.AppliedAtActionCount {
			inst.Remaining--
		}
	}
}

// Prune removes every instance whose duration is exhausted and returns them.
//
// Postcondition: Every instance remaining in the set is Live.
func (s *ActiveSet) Prune() []*Instance {
	var expired []*Instance
	kept := s.instances[:0]
	for _, inst := range s.instances {
		if inst.Live() {
			kept = append(kept, inst)
			continue
		}
		expired = append(expired, inst)
	}
	for i := len(kept); i < len(s.instances); i++ {
		s.instances[i] = nil
	}
	s.instances = kept
	return expired
}
