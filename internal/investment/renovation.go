package investment

// RenovationItem is an itemized renovation cost outside per-unit repairs.
type RenovationItem struct {
	Description string  `json:"description" yaml:"description"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// RenovationBudget tracks the per-unit repair costs and itemized renovation
// work of a property. Total always equals the sum of both parts.
type RenovationBudget struct {
	unitRepairs []float64
	items       []RenovationItem
	total       float64
}

// NewRenovationBudget seeds a budget from the units' repair costs and the
// itemized line items.
func NewRenovationBudget(units []Unit, items []RenovationItem) *RenovationBudget {
	b := &RenovationBudget{
		unitRepairs: make([]float64, len(units)),
		items:       append([]RenovationItem(nil), items...),
	}
	for i, unit := range units {
		b.unitRepairs[i] = unit.RepairCost
	}
	b.recompute()
	return b
}

// SetUnitRepair replaces the repair cost of unit index i, growing the unit
// list if needed.
func (b *RenovationBudget) SetUnitRepair(i int, cost float64) {
	if i < 0 {
		return
	}
	for len(b.unitRepairs) <= i {
		b.unitRepairs = append(b.unitRepairs, 0)
	}
	b.unitRepairs[i] = cost
	b.recompute()
}

// AddItem appends an itemized renovation line.
func (b *RenovationBudget) AddItem(item RenovationItem) {
	b.items = append(b.items, item)
	b.recompute()
}

// RemoveItem drops the line item at index i. Out of range indexes are ignored.
func (b *RenovationBudget) RemoveItem(i int) {
	if i < 0 || i >= len(b.items) {
		return
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	b.recompute()
}

// Items returns a copy of the itemized renovation lines.
func (b *RenovationBudget) Items() []RenovationItem {
	return append([]RenovationItem(nil), b.items...)
}

// UnitRepairTotal is the sum of per-unit repair costs.
func (b *RenovationBudget) UnitRepairTotal() float64 {
	total := 0.0
	for _, cost := range b.unitRepairs {
		total += cost
	}
	return total
}

// Total is the full renovation cost.
func (b *RenovationBudget) Total() float64 {
	return b.total
}

func (b *RenovationBudget) recompute() {
	total := b.UnitRepairTotal()
	for _, item := range b.items {
		total += item.Cost
	}
	b.total = total
}
