package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Container is the host surface a view renders into. It has a stable
// identity and an available size, and hosts at most one live view.
type Container struct {
	id string

	mu      sync.Mutex
	width   int
	height  int
	content string
	view    *View
}

// NewContainer returns a container. An empty id is replaced by a random one.
func NewContainer(id string) *Container {
	if id == "" {
		id = uuid.NewString()
	}
	return &Container{id: id}
}

func (c *Container) ID() string { return c.id }

// Resize sets the available size and re-renders the hosted view.
func (c *Container) Resize(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	v := c.view
	c.mu.Unlock()
	if v != nil {
		v.render()
	}
}

func (c *Container) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Content returns the last rendered output.
func (c *Container) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// View returns the hosted view, or nil.
func (c *Container) View() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Container) attach(v *View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != nil && c.view != v {
		return ErrContainerInUse
	}
	c.view = v
	return nil
}

func (c *Container) detach(v *View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == v {
		c.view = nil
		c.content = ""
	}
}

func (c *Container) setContent(v *View, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == v {
		c.content = content
	}
}
