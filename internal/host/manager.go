package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/event/events"
)

// Manager manages all open documents.
type Manager struct {
	documents map[string]*Document // id -> document
	order     []string             // tracks open order for navigation
	active    *Document
	bus       *event.Bus
	counter   int // for naming scratch documents
}

// NewManager creates a document manager publishing on bus (may be nil).
func NewManager(bus *event.Bus) *Manager {
	return &Manager{
		documents: make(map[string]*Document),
		bus:       bus,
	}
}

// Open opens a document from a file and activates it.
// Returns the existing document if the path is already open.
func (m *Manager) Open(ctx context.Context, path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	for _, id := range m.order {
		if doc := m.documents[id]; doc.Path == absPath {
			return doc, m.activate(ctx, doc)
		}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	doc := NewDocument(absPath, string(content))
	return doc, m.add(ctx, doc)
}

// OpenText creates a scratch document holding text and activates it.
func (m *Manager) OpenText(ctx context.Context, name, text string) (*Document, error) {
	doc := NewDocument("", text)
	m.counter++
	switch {
	case name != "":
		doc.Name = name
	case m.counter > 1:
		doc.Name = fmt.Sprintf("Untitled-%d", m.counter)
	}
	return doc, m.add(ctx, doc)
}

func (m *Manager) add(ctx context.Context, doc *Document) error {
	doc.bus = m.bus
	m.documents[doc.id] = doc
	m.order = append(m.order, doc.id)
	return m.activate(ctx, doc)
}

// Close closes a document and publishes document.closed.
func (m *Manager) Close(ctx context.Context, id string) error {
	doc, exists := m.documents[id]
	if !exists {
		return ErrDocumentNotFound
	}

	delete(m.documents, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	var next *Document
	if m.active == doc {
		m.active = nil
		if len(m.order) > 0 {
			next = m.documents[m.order[len(m.order)-1]]
		}
	}

	err := m.publish(ctx, event.NewEvent(events.TopicDocumentClosed, events.DocumentClosed{DocumentID: id}, eventSource))
	if next != nil {
		if aerr := m.activate(ctx, next); aerr != nil && err == nil {
			err = aerr
		}
	}
	return err
}

// Active returns the currently active document, or nil.
func (m *Manager) Active() *Document {
	return m.active
}

// SetActive activates the document with the given id.
func (m *Manager) SetActive(ctx context.Context, id string) error {
	doc, exists := m.documents[id]
	if !exists {
		return ErrDocumentNotFound
	}
	return m.activate(ctx, doc)
}

func (m *Manager) activate(ctx context.Context, doc *Document) error {
	m.active = doc
	return m.publish(ctx, event.NewEvent(events.TopicDocumentActivated, events.DocumentActivated{DocumentID: doc.id}, eventSource))
}

// Get returns a document by id.
func (m *Manager) Get(id string) (*Document, bool) {
	doc, exists := m.documents[id]
	return doc, exists
}

// All returns all open documents in open order.
func (m *Manager) All() []*Document {
	docs := make([]*Document, 0, len(m.order))
	for _, id := range m.order {
		docs = append(docs, m.documents[id])
	}
	return docs
}

// Count returns the number of open documents.
func (m *Manager) Count() int {
	return len(m.documents)
}

// Next activates the next document in open order, wrapping around.
func (m *Manager) Next(ctx context.Context) (*Document, error) {
	return m.step(ctx, 1)
}

// Previous activates the previous document in open order, wrapping around.
func (m *Manager) Previous(ctx context.Context) (*Document, error) {
	return m.step(ctx, -1)
}

func (m *Manager) step(ctx context.Context, delta int) (*Document, error) {
	if len(m.order) == 0 || m.active == nil {
		return nil, nil
	}
	current := -1
	for i, id := range m.order {
		if id == m.active.id {
			current = i
			break
		}
	}
	if current == -1 {
		return m.active, nil
	}
	n := len(m.order)
	doc := m.documents[m.order[((current+delta)%n+n)%n]]
	return doc, m.activate(ctx, doc)
}

func (m *Manager) publish(ctx context.Context, ev any) error {
	if m.bus == nil {
		return nil
	}
	return m.bus.Publish(ctx, ev)
}
