// Package view holds the page element table the dashboard renders from.
// Element ids follow the markup conventions {field}_{deviceId} for
// telemetry and input_{deviceId}_{field} for custom profile inputs.
package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"chamber_dashboard/internal/models"
)

// ErrElementNotFound is returned when an element id has no markup on the page.
var ErrElementNotFound = errors.New("element not found")

// FieldElementID is the id of the element showing a snapshot field.
func FieldElementID(field string, id models.ID) string {
	return field + "_" + string(id)
}

// InputElementID is the id of the input holding a custom profile field.
func InputElementID(id models.ID, field string) string {
	return InputPrefix + string(id) + "_" + field
}

type element struct {
	id    string
	input bool
	text  string // text content (telemetry elements)
	value string // value (input elements)
}

// binding is the per-device lookup table from field name to element.
type binding struct {
	fields map[string]*element
	inputs map[string]*element
}

// Page is a concurrency-safe element table.
type Page struct {
	mu       sync.RWMutex
	elements map[string]*element
	devices  map[models.ID]*binding
	version  uint64
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{
		elements: make(map[string]*element),
		devices:  make(map[models.ID]*binding),
	}
}

// InputPrefix marks a profile input in a Mount field list, as in
// "input_dry_time". Unprefixed names are telemetry fields.
const InputPrefix = "input_"

// Mount creates the markup for a device. With no fields given, every
// snapshot field and every profile input is created. Otherwise telemetry
// fields are named as-is and inputs carry InputPrefix; unknown names are
// skipped. Mounting an already mounted device adds the missing elements
// and keeps existing content.
func (p *Page) Mount(id models.ID, fields ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.devices[id]
	if !ok {
		b = &binding{fields: map[string]*element{}, inputs: map[string]*element{}}
		p.devices[id] = b
	}

	snapshotFields, profileFields := models.SnapshotFields, models.ProfileFields
	if len(fields) > 0 {
		snapshotFields, profileFields = splitFields(fields)
	}
	for _, f := range snapshotFields {
		if !contains(models.SnapshotFields, f) {
			continue
		}
		if _, ok := b.fields[f]; !ok {
			b.fields[f] = p.create(FieldElementID(f, id), false)
		}
	}
	for _, f := range profileFields {
		if !contains(models.ProfileFields, f) {
			continue
		}
		if _, ok := b.inputs[f]; !ok {
			b.inputs[f] = p.create(InputElementID(id, f), true)
		}
	}
	p.version++
}

// splitFields separates telemetry names from InputPrefix'd input names.
func splitFields(fields []string) (snapshot, inputs []string) {
	for _, f := range fields {
		if name, ok := strings.CutPrefix(f, InputPrefix); ok {
			inputs = append(inputs, name)
			continue
		}
		snapshot = append(snapshot, f)
	}
	return snapshot, inputs
}

func (p *Page) create(elementID string, input bool) *element {
	if el, ok := p.elements[elementID]; ok {
		return el
	}
	el := &element{id: elementID, input: input}
	p.elements[elementID] = el
	return el
}

// Unmount removes every element of a device.
func (p *Page) Unmount(id models.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.devices[id]
	if !ok {
		return false
	}
	for _, el := range b.fields {
		delete(p.elements, el.id)
	}
	for _, el := range b.inputs {
		delete(p.elements, el.id)
	}
	delete(p.devices, id)
	p.version++
	return true
}

// Remove deletes a single element, as when markup omits a field.
func (p *Page) Remove(elementID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.elements[elementID]; !ok {
		return false
	}
	delete(p.elements, elementID)
	for _, b := range p.devices {
		for f, el := range b.fields {
			if el.id == elementID {
				delete(b.fields, f)
			}
		}
		for f, el := range b.inputs {
			if el.id == elementID {
				delete(b.inputs, f)
			}
		}
	}
	p.version++
	return true
}

// Devices returns the mounted device ids, sorted.
func (p *Page) Devices() []models.ID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.ID, 0, len(p.devices))
	for id := range p.devices {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Project writes every present field of s onto its element. Missing
// elements do not stop the remaining writes; they are returned joined.
func (p *Page) Project(s models.TelemetrySnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.devices[s.ID]
	var errs []error
	wrote := false
	for _, f := range s.Fields() {
		if !f.Value.Present() {
			continue
		}
		var el *element
		if b != nil {
			el = b.fields[f.Name]
		}
		if el == nil {
			errs = append(errs, notFound(FieldElementID(f.Name, s.ID)))
			continue
		}
		el.text = f.Value.String()
		wrote = true
	}
	if wrote {
		p.version++
	}
	return errors.Join(errs...)
}

// SetText sets the text content of an element.
func (p *Page) SetText(elementID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[elementID]
	if !ok {
		return notFound(elementID)
	}
	el.text = text
	p.version++
	return nil
}

// Text returns the text content of an element.
func (p *Page) Text(elementID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	el, ok := p.elements[elementID]
	if !ok {
		return "", notFound(elementID)
	}
	return el.text, nil
}

// SetValue sets the value of an input element.
func (p *Page) SetValue(elementID, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.elements[elementID]
	if !ok || !el.input {
		return notFound(elementID)
	}
	el.value = value
	p.version++
	return nil
}

// Value returns the raw value of an input element.
func (p *Page) Value(elementID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	el, ok := p.elements[elementID]
	if !ok || !el.input {
		return "", notFound(elementID)
	}
	return el.value, nil
}

// Elements returns a copy of every element's visible content keyed by id.
// Inputs report their value, other elements their text.
func (p *Page) Elements() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]string, len(p.elements))
	for id, el := range p.elements {
		out[id] = el.content()
	}
	return out
}

// Device returns the element contents of one mounted device.
func (p *Page) Device(id models.ID) (map[string]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.devices[id]
	if !ok {
		return nil, fmt.Errorf("device %q: %w", id, ErrElementNotFound)
	}
	out := make(map[string]string, len(b.fields)+len(b.inputs))
	for _, el := range b.fields {
		out[el.id] = el.content()
	}
	for _, el := range b.inputs {
		out[el.id] = el.content()
	}
	return out, nil
}

// Version increments on every write and lets readers skip unchanged pages.
func (p *Page) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

func (el *element) content() string {
	if el.input {
		return el.value
	}
	return el.text
}

func notFound(elementID string) error {
	return fmt.Errorf("%w: #%s", ErrElementNotFound, elementID)
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
