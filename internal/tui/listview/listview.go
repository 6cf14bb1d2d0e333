// ABOUTME: Shared list-state bookkeeping for resource pages
// ABOUTME: Tracks pagination, the active filter, and request generations

package listview

// FilterKind tags the active list filter
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterSearch
	FilterCategory
)

// Filter is the tagged filter variant for a list view. Search term and
// category filter are mutually exclusive by construction: a Filter only
// ever carries the value matching its kind.
type Filter struct {
	kind       FilterKind
	term       string
	categoryID int64
}

// NoFilter returns the unfiltered variant
func NoFilter() Filter {
	return Filter{kind: FilterNone}
}

// BySearch returns a search-term filter
func BySearch(term string) Filter {
	if term == "" {
		return NoFilter()
	}
	return Filter{kind: FilterSearch, term: term}
}

// ByCategory returns a category filter
func ByCategory(id int64) Filter {
	if id <= 0 {
		return NoFilter()
	}
	return Filter{kind: FilterCategory, categoryID: id}
}

// Kind returns the filter variant tag
func (f Filter) Kind() FilterKind { return f.kind }

// Term returns the search term; empty unless Kind is FilterSearch
func (f Filter) Term() string { return f.term }

// CategoryID returns the category id; zero unless Kind is FilterCategory
func (f Filter) CategoryID() int64 { return f.categoryID }

// State holds the list bookkeeping for one resource page view.
// Every load is tagged with a generation; a response carrying a stale
// generation must not overwrite state for a newer request.
type State[T any] struct {
	pageIndex     int
	pageSize      int
	filter        Filter
	records       []T
	totalElements int
	totalPages    int
	errMsg        string
	generation    int
	loading       bool
}

// New creates list state with the given page size
func New[T any](pageSize int) *State[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &State[T]{pageSize: pageSize}
}

// BeginLoad marks a new in-flight request and returns its generation
func (s *State[T]) BeginLoad() int {
	s.generation++
	s.loading = true
	return s.generation
}

// Apply installs a successful response. Returns false (and changes
// nothing) when the generation is stale.
func (s *State[T]) Apply(gen int, records []T, totalElements, totalPages, number int) bool {
	if gen != s.generation {
		return false
	}
	s.loading = false
	s.records = records
	s.totalElements = totalElements
	s.totalPages = totalPages
	s.pageIndex = number
	s.errMsg = ""
	return true
}

// Fail installs a failed response: records cleared, metadata zeroed,
// message retained. Returns false when the generation is stale.
func (s *State[T]) Fail(gen int, msg string) bool {
	if gen != s.generation {
		return false
	}
	s.loading = false
	s.records = nil
	s.totalElements = 0
	s.totalPages = 0
	s.errMsg = msg
	return true
}

// SetSearch activates the search filter and rewinds to the first page.
// Any category filter is displaced by construction.
func (s *State[T]) SetSearch(term string) {
	s.filter = BySearch(term)
	s.pageIndex = 0
}

// SetCategory activates the category filter and rewinds to the first page.
// Any search term is displaced by construction.
func (s *State[T]) SetCategory(id int64) {
	s.filter = ByCategory(id)
	s.pageIndex = 0
}

// ClearFilter removes any active filter and rewinds to the first page
func (s *State[T]) ClearFilter() {
	s.filter = NoFilter()
	s.pageIndex = 0
}

// SetPageSize changes the page size and rewinds to the first page
func (s *State[T]) SetPageSize(size int) {
	if size <= 0 || size == s.pageSize {
		return
	}
	s.pageSize = size
	s.pageIndex = 0
}

// NextPage advances one page when one exists; reports whether it moved
func (s *State[T]) NextPage() bool {
	if s.pageIndex+1 >= s.totalPages {
		return false
	}
	s.pageIndex++
	return true
}

// PrevPage rewinds one page when possible; reports whether it moved
func (s *State[T]) PrevPage() bool {
	if s.pageIndex == 0 {
		return false
	}
	s.pageIndex--
	return true
}

// DismissError clears the visible error message
func (s *State[T]) DismissError() {
	s.errMsg = ""
}

// Accessors

func (s *State[T]) PageIndex() int     { return s.pageIndex }
func (s *State[T]) PageSize() int      { return s.pageSize }
func (s *State[T]) Filter() Filter     { return s.filter }
func (s *State[T]) Records() []T       { return s.records }
func (s *State[T]) TotalElements() int { return s.totalElements }
func (s *State[T]) TotalPages() int    { return s.totalPages }
func (s *State[T]) ErrMsg() string     { return s.errMsg }
func (s *State[T]) Loading() bool      { return s.loading }
