package report

import "fmt"

// PageState tracks where a render pass is within the per-page lifecycle.
// Every fresh page starts with the column header pending; once the row
// source runs dry the cursor is Done.
type PageState int

const (
	StateHeaderPending PageState = iota
	StateRenderingRows
	StatePageFull
	StateDone
)

func (s PageState) String() string {
	switch s {
	case StateHeaderPending:
		return "HeaderPending"
	case StateRenderingRows:
		return "RenderingRows"
	case StatePageFull:
		return "PageFull"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("PageState(%d)", int(s))
	}
}

// PageCursor is the vertical write cursor of a single render pass. It is
// owned exclusively by that pass; concurrent exports each get their own.
// Y only grows within a page and resets to the top margin on page break;
// PageIndex grows by exactly 1 per break.
type PageCursor struct {
	PageIndex int
	Y         float64
	State     PageState

	cfg LayoutConfig
}

func NewPageCursor(cfg LayoutConfig) *PageCursor {
	return &PageCursor{
		PageIndex: 0,
		Y:         cfg.MarginTop,
		State:     StateHeaderPending,
		cfg:       cfg,
	}
}

// Fits reports whether a block of height h can still go on the current page.
func (c *PageCursor) Fits(h float64) bool {
	return c.Y+h <= c.cfg.BodyBottom()
}

// Place advances the cursor past a drawn block of height h. The block must
// have been checked with Fits first; a row never spans two pages.
func (c *PageCursor) Place(h float64) {
	c.Y += h
	if c.State == StateHeaderPending {
		c.State = StateRenderingRows
	}
}

// MarkFull flags the current page as exhausted; the next StartPage allocates
// a fresh page with the column header pending again.
func (c *PageCursor) MarkFull() {
	c.State = StatePageFull
}

// StartPage resets the cursor onto a freshly allocated page.
func (c *PageCursor) StartPage() {
	if c.State == StatePageFull {
		c.PageIndex++
	}
	c.Y = c.cfg.MarginTop
	c.State = StateHeaderPending
}

// Finish marks the pass complete; the cursor must not be reused afterwards.
func (c *PageCursor) Finish() {
	c.State = StateDone
}
