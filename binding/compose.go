package binding

import (
	"fmt"
	"sync"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/commands"
)

var (
	notEditable         = engine.Editable.Of(false)
	readOnly            = engine.ReadOnly.Of(true)
	indentWithTabKeymap = engine.Keymap(commands.IndentWithTab...)
)

const memoLimit = 64

// Composer orders configuration fragments for Props:
//
//  1. update listener
//  2. sizing theme
//  3. indent-with-tab keymap, when enabled
//  4. placeholder, when set
//  5. editability, when false
//  6. read-only, when true
//  7. theme
//  8. update hook, when OnUpdate is set
//
// followed by Props.Extensions in caller order. Fragments built from equal
// inputs are reused, so equal props compose to identical lists.
type Composer struct {
	listener engine.Extension
	hook     engine.Extension

	mu           sync.Mutex
	sizes        map[engine.Sizing]engine.Extension
	placeholders map[string]engine.Extension
}

// NewComposer returns a composer placing listener first and hook in the
// update-hook slot.
func NewComposer(listener, hook engine.Extension) *Composer {
	return &Composer{
		listener:     listener,
		hook:         hook,
		sizes:        make(map[engine.Sizing]engine.Extension),
		placeholders: make(map[string]engine.Extension),
	}
}

// Compose returns the fragment list for p. A nil fragment in p.Extensions is
// reported as a *engine.ConfigurationError carrying its composed index.
func (c *Composer) Compose(p Props) ([]engine.Extension, error) {
	exts := make([]engine.Extension, 0, 8+len(p.Extensions))
	exts = append(exts, c.listener, c.sizeTheme(p.sizing()))
	if p.indentWithTab() {
		exts = append(exts, indentWithTabKeymap)
	}
	if p.Placeholder != "" {
		exts = append(exts, c.placeholder(p.Placeholder))
	}
	if !p.editable() {
		exts = append(exts, notEditable)
	}
	if p.ReadOnly {
		exts = append(exts, readOnly)
	}
	exts = append(exts, p.Theme.Extension())
	if p.OnUpdate != nil {
		exts = append(exts, c.hook)
	}
	for i, ext := range p.Extensions {
		if ext == nil {
			return nil, &engine.ConfigurationError{
				Index:  len(exts),
				Reason: fmt.Sprintf("nil fragment at Extensions[%d]", i),
			}
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

func (c *Composer) sizeTheme(s engine.Sizing) engine.Extension {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ext, ok := c.sizes[s]; ok {
		return ext
	}
	if len(c.sizes) >= memoLimit {
		clear(c.sizes)
	}
	ext := engine.SizeTheme(s)
	c.sizes[s] = ext
	return ext
}

func (c *Composer) placeholder(text string) engine.Extension {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ext, ok := c.placeholders[text]; ok {
		return ext
	}
	if len(c.placeholders) >= memoLimit {
		clear(c.placeholders)
	}
	ext := engine.Placeholder.Of(text)
	c.placeholders[text] = ext
	return ext
}
