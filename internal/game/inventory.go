package game

// DefaultItemIcon is the icon key for artifacts without one of their own.
const DefaultItemIcon = "Box"

// DefaultItemDescription is used when an artifact arrives without a blurb.
const DefaultItemDescription = "An alien artifact."

// Item is an artifact picked up during a run.
type Item struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

// Inventory is the ordered list of artifacts held by the crew.
// Items are only ever appended during a run.
type Inventory struct {
	Items []Item
}

// NewInventory creates an empty inventory.
func NewInventory() Inventory {
	return Inventory{}
}

// Add appends an item.
func (inv *Inventory) Add(it Item) {
	if it.Icon == "" {
		it.Icon = DefaultItemIcon
	}
	if it.Description == "" {
		it.Description = DefaultItemDescription
	}
	inv.Items = append(inv.Items, it)
}

// Len returns the number of items held.
func (inv Inventory) Len() int { return len(inv.Items) }

// Names returns the item names in acquisition order.
func (inv Inventory) Names() []string {
	names := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		names[i] = it.Name
	}
	return names
}

// Clone returns a copy that does not share the backing array.
func (inv Inventory) Clone() Inventory {
	return Inventory{Items: append([]Item(nil), inv.Items...)}
}
