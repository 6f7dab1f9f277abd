package dispatch

import (
	"log/slog"

	"quimiview/internal/elements"
	"quimiview/internal/state"
)

// Instruction is one decoded hardware event. Element and Symbol are the
// recognized identifier keys; Fields keeps the whole decoded object for
// diagnostics.
type Instruction struct {
	Element string
	Symbol  string
	Fields  map[string]any
}

// ParseInstruction pulls the recognized keys out of a decoded frame.
func ParseInstruction(fields map[string]any) Instruction {
	inst := Instruction{Fields: fields}
	if v, ok := fields["element"].(string); ok {
		inst.Element = v
	}
	if v, ok := fields["symbol"].(string); ok {
		inst.Symbol = v
	}
	return inst
}

// Identifier returns the element identifier: "element" when non-empty,
// falling back to "symbol", else empty.
func (i Instruction) Identifier() string {
	if i.Element != "" {
		return i.Element
	}
	return i.Symbol
}

// Dispatcher resolves instructions against the dataset and updates the
// shared current-element slot.
type Dispatcher struct {
	db     *elements.Dataset
	state  *state.Holder
	logger *slog.Logger
}

func New(db *elements.Dataset, holder *state.Holder, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{db: db, state: holder, logger: logger}
}

// Handle processes one decoded frame. A missing identifier leaves the
// state untouched; an unknown identifier clears it. Lookup misses are a
// normal outcome, not an error.
func (d *Dispatcher) Handle(fields map[string]any) {
	inst := ParseInstruction(fields)
	d.logger.Debug("instruction received", "fields", fields)

	id := inst.Identifier()
	if id == "" {
		d.logger.Info("no element specified in instruction")
		return
	}

	rec, ok := d.db.FindBySymbol(id)
	if !ok {
		rec, ok = d.db.FindByName(id)
	}
	if ok {
		d.state.Set(rec)
		d.logger.Info("element found", "name", rec.Name, "symbol", rec.Symbol)
	} else {
		d.state.Clear()
		d.logger.Info("element not found", "identifier", id)
	}
}
