package quotes

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

// State is the builder's lifecycle position.
type State string

const (
	// StateEmpty means no working set is loaded.
	StateEmpty State = "empty"
	// StateBuildingNew means the working set will persist as a new quote.
	StateBuildingNew State = "building-new"
	// StateBuildingEdit means the working set came from a persisted quote
	// and will persist as an update to it.
	StateBuildingEdit State = "building-edit"
	// StateSaving means a save is in flight.
	StateSaving State = "saving"
)

// Builder holds the transient working set of a quote being assembled: client
// name plus line items, with the create-vs-edit tag deciding what a save
// does. All mutations happen on discrete user events, so a single mutex is
// the only coordination needed; the save guard is the one deliberate
// one-at-a-time constraint.
type Builder struct {
	mu         sync.Mutex
	state      State
	editingID  string
	clientName string
	lines      []QuoteLine
	saving     bool
	// priorState lets a failed save restore the building mode it interrupted.
	priorState State
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{state: StateEmpty}
}

// StartNew clears the working set for a fresh quote.
func (b *Builder) StartNew() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateBuildingNew
	b.editingID = ""
	b.clientName = ""
	b.lines = nil
}

// StartEdit loads a persisted quote's line items into the working set and
// tags it so a save updates instead of creating.
func (b *Builder) StartEdit(quote Quote, lines []QuoteLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateBuildingEdit
	b.editingID = quote.ID
	b.clientName = quote.ClientName
	b.lines = append([]QuoteLine(nil), lines...)
}

// SetClientName records the client the quote is for. Surrounding whitespace
// is trimmed, so a blank entry still fails the save validation.
func (b *Builder) SetClientName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clientName = strings.TrimSpace(name)
	b.ensureBuilding()
}

// AddProduct adds one unit of the product to the working set. A product
// already present gets its quantity incremented; otherwise a new line
// captures the product's current name, brand and price.
func (b *Builder) AddProduct(p catalog.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lines {
		if b.lines[i].ProductID == p.ID {
			b.lines[i].Quantity++
			b.ensureBuilding()
			return
		}
	}
	b.lines = append(b.lines, QuoteLine{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		UnitPrice: p.Price,
		Quantity:  1,
	})
	b.ensureBuilding()
}

// SetQuantity replaces a line's quantity. Only positive integers are
// accepted; anything else leaves the line unchanged, silently.
func (b *Builder) SetQuantity(index int, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.lines) {
		return
	}
	qty, err := strconv.Atoi(value)
	if err != nil || qty <= 0 {
		return
	}
	b.lines[index].Quantity = qty
}

// RemoveLine deletes the line at the given index; lines after it shift down
// by one. Indices always refer to the current list, never a cached one.
func (b *Builder) RemoveLine(index int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
}

// Lines returns a copy of the working line items.
func (b *Builder) Lines() []QuoteLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]QuoteLine(nil), b.lines...)
}

// ClientName returns the current client name.
func (b *Builder) ClientName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clientName
}

// State returns the lifecycle position.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// EditingID returns the source quote id when editing, empty otherwise.
func (b *Builder) EditingID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editingID
}

// GrandTotal recomputes the sum of price times quantity across all lines.
func (b *Builder) GrandTotal() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grandTotal(b.lines)
}

// Snapshot is the immutable view of the working set a save operates on.
type Snapshot struct {
	EditingID  string
	ClientName string
	Lines      []QuoteLine
	GrandTotal float64
}

// Snapshot returns a point-in-time copy of the working set without arming
// the save guard. Used by read-only consumers such as the PDF export.
func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		EditingID:  b.editingID,
		ClientName: b.clientName,
		Lines:      append([]QuoteLine(nil), b.lines...),
		GrandTotal: grandTotal(b.lines),
	}
}

// BeginSave validates the working set and arms the in-flight guard. A
// second BeginSave while one save is pending returns ErrSaveInProgress and
// changes nothing.
func (b *Builder) BeginSave() (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saving {
		return Snapshot{}, ErrSaveInProgress
	}
	if strings.TrimSpace(b.clientName) == "" {
		return Snapshot{}, ErrClientNameRequired
	}
	if len(b.lines) == 0 {
		return Snapshot{}, ErrEmptyQuote
	}
	b.saving = true
	b.priorState = b.state
	b.state = StateSaving
	return Snapshot{
		EditingID:  b.editingID,
		ClientName: b.clientName,
		Lines:      append([]QuoteLine(nil), b.lines...),
		GrandTotal: grandTotal(b.lines),
	}, nil
}

// EndSave releases the guard. Success resets the builder to empty, the
// equivalent of returning to the gallery; failure restores the building
// state it interrupted with selection and line items preserved.
func (b *Builder) EndSave(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saving = false
	if success {
		b.state = StateEmpty
		b.editingID = ""
		b.clientName = ""
		b.lines = nil
		return
	}
	b.state = b.priorState
}

// ensureBuilding promotes an empty builder into building-new on its first
// mutation. Callers must hold b.mu.
func (b *Builder) ensureBuilding() {
	if b.state == StateEmpty {
		b.state = StateBuildingNew
	}
}

func grandTotal(lines []QuoteLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
