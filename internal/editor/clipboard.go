package editor

import (
	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/tree"
)

// ClipboardMode records how the clipboard was filled.
type ClipboardMode string

const (
	ClipboardCopy ClipboardMode = "copy"
	ClipboardCut  ClipboardMode = "cut"
)

// Clipboard holds a snapshot of items taken at copy/cut time. It carries no
// area affinity: paste targets whatever area is active at paste time. Cut
// removes the originals immediately, not at paste time.
type Clipboard struct {
	mode  ClipboardMode
	items []*models.Item
}

// Set snapshots the given items. The clipboard deep-copies so later document
// edits cannot reach the stored subtrees.
func (c *Clipboard) Set(mode ClipboardMode, items []*models.Item) {
	c.mode = mode
	c.items = models.CloneItems(items)
}

// Items returns identity-regenerated clones ready for insertion. Repeated
// pastes therefore never collide identities.
func (c *Clipboard) Items() []*models.Item {
	return tree.CloneItemsWithNewIDs(c.items)
}

// Mode returns how the clipboard was filled.
func (c *Clipboard) Mode() ClipboardMode { return c.mode }

// Empty reports whether there is anything to paste.
func (c *Clipboard) Empty() bool { return len(c.items) == 0 }

// Clear drops the clipboard contents.
func (c *Clipboard) Clear() {
	c.mode = ""
	c.items = nil
}
