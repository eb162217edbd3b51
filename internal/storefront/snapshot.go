package storefront

import (
	"PlantStore/internal/cart"
	"PlantStore/internal/catalog"
	"PlantStore/internal/paging"
)

// Grid states carried in a snapshot. "empty" is the "no plants found, try
// another category" rendering, shown both for a genuinely empty category
// and after an upstream failure.
const (
	GridOK    = "ok"
	GridEmpty = "empty"
)

// Snapshot is the full render payload for a session: everything a
// presentation layer needs to draw the storefront after a state change.
type Snapshot struct {
	SessionID      string             `json:"session_id"`
	ActiveCategory string             `json:"active_category"`
	Categories     []catalog.Category `json:"categories"`
	GridState      string             `json:"grid_state"`
	Plants         []catalog.Plant    `json:"plants"`
	Pagination     *paging.Controls   `json:"pagination,omitempty"`
	Cart           CartView           `json:"cart"`
}

// CartView is the cart portion of a snapshot: the lines plus the badge
// totals.
type CartView struct {
	Lines         []cart.Line `json:"lines"`
	TotalQuantity int         `json:"total_quantity"`
	TotalPrice    float64     `json:"total_price"`
}

// Snapshot assembles the current render payload. Plants holds only the
// visible page slice; Pagination is omitted when there is a single page or
// none at all.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := GridOK
	if len(s.pager.Items()) == 0 {
		grid = GridEmpty
	}

	plants := s.pager.Slice()
	out := make([]catalog.Plant, len(plants))
	copy(out, plants)

	totals := s.cart.Totals()
	return Snapshot{
		SessionID:      s.ID,
		ActiveCategory: s.active,
		Categories:     s.categories,
		GridState:      grid,
		Plants:         out,
		Pagination:     s.pager.Controls(),
		Cart: CartView{
			Lines:         s.cart.Lines(),
			TotalQuantity: totals.Quantity,
			TotalPrice:    totals.Price,
		},
	}
}
