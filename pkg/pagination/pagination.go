// Package pagination computes page windows for listing views and drives
// paged display of entity collections in either server-driven or local mode.
package pagination

// Ellipsis marks a gap in a page window where page numbers were elided.
const Ellipsis = -1

const windowRadius = 1

// Window returns the page numbers to display for a pager that is
// totalPages wide with currentPage active. Up to five pages are shown:
// all of them when totalPages <= 5, otherwise the first page, the last
// page and a three-page run near currentPage, with Ellipsis filling any
// gap. The run is anchored to pages 2-4 near the start and to the three
// pages before the last near the end.
func Window(totalPages, currentPage int) []int {
	if totalPages <= 0 {
		return nil
	}

	if totalPages <= 5 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := currentPage - windowRadius
	end := currentPage + windowRadius
	switch {
	case currentPage <= 2:
		start, end = 2, 4
	case currentPage >= totalPages-1:
		start, end = totalPages-3, totalPages-1
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}

// State is the display condition of an Engine. Exactly one state applies
// at a time, resolved in declaration order.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	}
	return "unknown"
}

// Engine pages a row collection. In manual mode the rows are already the
// current page as fetched from the server and the engine only relays
// page-change intents through OnPageChange; in automatic mode the engine
// holds the full collection and slices the current page itself.
type Engine[T any] struct {
	rows          []T
	currentPage   int
	pageSize      int
	totalElements int
	manual        bool

	loading bool
	err     error

	// OnPageChange fires after SetPage in manual mode so the caller can
	// refetch the new page.
	OnPageChange func(page int)
}

// NewManual builds an engine over an externally paginated dataset. rows
// holds only the current page; totalElements is the server-reported
// total across all pages.
func NewManual[T any](rows []T, currentPage, pageSize, totalElements int) *Engine[T] {
	return &Engine[T]{
		rows:          rows,
		currentPage:   normalizePage(currentPage),
		pageSize:      normalizePageSize(pageSize),
		totalElements: totalElements,
		manual:        true,
	}
}

// NewAuto builds an engine that slices the full local row collection.
func NewAuto[T any](rows []T, currentPage, pageSize int) *Engine[T] {
	return &Engine[T]{
		rows:        rows,
		currentPage: normalizePage(currentPage),
		pageSize:    normalizePageSize(pageSize),
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}

// CurrentPage returns the active page number.
func (e *Engine[T]) CurrentPage() int { return e.currentPage }

// TotalElements returns the row count the pager is computed over.
func (e *Engine[T]) TotalElements() int {
	if e.manual {
		return e.totalElements
	}
	return len(e.rows)
}

// TotalPages returns the number of pages needed for TotalElements.
func (e *Engine[T]) TotalPages() int {
	total := e.TotalElements()
	if total == 0 {
		return 0
	}
	return (total + e.pageSize - 1) / e.pageSize
}

// Rows returns the rows for the current page. Manual mode never slices:
// the caller's rows are returned exactly as provided.
func (e *Engine[T]) Rows() []T {
	if e.manual {
		return e.rows
	}

	start := (e.currentPage - 1) * e.pageSize
	if start >= len(e.rows) {
		return nil
	}
	end := start + e.pageSize
	if end > len(e.rows) {
		end = len(e.rows)
	}
	return e.rows[start:end]
}

// SetPage moves to the given page, clamped to the valid range. In manual
// mode the engine keeps its current rows and notifies OnPageChange so
// the caller can refetch.
func (e *Engine[T]) SetPage(page int) {
	page = normalizePage(page)
	if tp := e.TotalPages(); tp > 0 && page > tp {
		page = tp
	}
	if page == e.currentPage {
		return
	}

	e.currentPage = page
	if e.manual && e.OnPageChange != nil {
		e.OnPageChange(page)
	}
}

// Window returns the page-number display sequence for the current state.
func (e *Engine[T]) Window() []int {
	return Window(e.TotalPages(), e.currentPage)
}

// SetLoading marks the engine as waiting for data.
func (e *Engine[T]) SetLoading(loading bool) { e.loading = loading }

// SetError records a fetch failure. Pass nil to clear it.
func (e *Engine[T]) SetError(err error) { e.err = err }

// Err returns the recorded fetch failure, if any.
func (e *Engine[T]) Err() error { return e.err }

// State resolves the display condition with loading taking precedence
// over error, error over empty, and empty over populated.
func (e *Engine[T]) State() State {
	switch {
	case e.loading:
		return StateLoading
	case e.err != nil:
		return StateError
	case len(e.rows) == 0:
		return StateEmpty
	}
	return StatePopulated
}
