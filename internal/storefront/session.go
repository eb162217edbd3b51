package storefront

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"PlantStore/internal/cart"
	"PlantStore/internal/catalog"
	"PlantStore/internal/paging"
)

// CategoryAll is the pseudo-category for the full plant list; it is the
// default selection of a fresh session.
const CategoryAll = "all"

// ErrBadCategory reports a category selector that is neither "all" nor an
// integer id.
var ErrBadCategory = errors.New("bad category id")

// Session is one visitor's storefront state: the category list, the active
// category, the paginated plant list, the detail cache and the cart. It is
// the server-side equivalent of the state a single browser tab would hold.
type Session struct {
	ID string

	client  *catalog.Client
	log     *zap.Logger
	metrics *Metrics

	mu         sync.Mutex // guards the fields below; never held across a fetch
	categories []catalog.Category
	active     string
	pager      *paging.Pager[catalog.Plant]
	fetchSeq   uint64

	cart    *cart.Cart
	details *catalog.DetailCache
}

func newSession(client *catalog.Client, pageSize int, log *zap.Logger, metrics *Metrics) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		ID:      "s_" + uuid.NewString(),
		client:  client,
		log:     log,
		metrics: metrics,
		active:  CategoryAll,
		pager:   paging.New[catalog.Plant](pageSize),
		cart:    cart.New(),
		details: catalog.NewDetailCache(),
	}
	return s
}

// Boot loads the category list and the full plant list, mirroring the
// storefront's first paint. Either fetch may fail; the session then starts
// with the corresponding list empty and keeps working.
func (s *Session) Boot(ctx context.Context) {
	cats, err := s.client.Categories(ctx)
	s.metrics.CatalogFetch("categories", err)
	if err != nil {
		s.log.Warn("load categories failed", zap.Error(err), zap.String("session_id", s.ID))
		cats = nil
	}

	s.mu.Lock()
	s.categories = cats
	token := s.nextFetchToken()
	s.mu.Unlock()

	plants, err := s.client.AllPlants(ctx)
	s.metrics.CatalogFetch("plants", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tokenCurrent(token) {
		return
	}
	if err != nil {
		s.log.Warn("load all plants failed", zap.Error(err), zap.String("session_id", s.ID))
		s.pager.SetItems(nil)
		return
	}
	s.pager.SetItems(plants)
}

// SelectCategory switches the product list to the given category ("all" or
// a numeric id). The fetch runs without the session lock; a monotonic
// token taken up front lets a response that lost the race to a newer
// selection be discarded instead of overwriting it.
func (s *Session) SelectCategory(ctx context.Context, category string) error {
	var categoryID int
	if category != CategoryAll {
		n, err := strconv.Atoi(category)
		if err != nil {
			return ErrBadCategory
		}
		categoryID = n
	}

	s.mu.Lock()
	token := s.nextFetchToken()
	s.mu.Unlock()

	var (
		plants []catalog.Plant
		err    error
	)
	if category == CategoryAll {
		plants, err = s.client.AllPlants(ctx)
		s.metrics.CatalogFetch("plants", err)
	} else {
		plants, err = s.client.PlantsByCategory(ctx, categoryID)
		s.metrics.CatalogFetch("category", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tokenCurrent(token) {
		return nil
	}
	if err != nil {
		// Upstream trouble is not the visitor's problem: show the empty
		// grid and leave the previous selection highlighted.
		s.log.Warn("load plants failed",
			zap.Error(err),
			zap.String("category", category),
			zap.String("session_id", s.ID),
		)
		s.pager.SetItems(nil)
		return nil
	}

	s.active = category
	s.pager.SetItems(plants)
	return nil
}

func (s *Session) GoToPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.GoTo(n)
}

func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Next()
}

func (s *Session) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Prev()
}

// AddToCart puts the plant with the given id from the currently loaded
// list into the cart. An id that is not on the current list is ignored.
func (s *Session) AddToCart(plantID int) {
	s.mu.Lock()
	items := s.pager.Items()
	var found *catalog.Plant
	for i := range items {
		if items[i].ID == plantID {
			found = &items[i]
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return
	}
	s.cart.Add(found.Name, float64(found.Price), found.Image)
}

func (s *Session) IncrementLine(lineID string) { s.cart.Increment(lineID) }
func (s *Session) DecrementLine(lineID string) { s.cart.Decrement(lineID) }
func (s *Session) RemoveLine(lineID string)    { s.cart.Remove(lineID) }

// PlantDetail serves the detail view, hitting the upstream at most once
// per plant id for the lifetime of the session.
func (s *Session) PlantDetail(ctx context.Context, plantID int) (catalog.Plant, error) {
	if p, ok := s.details.Get(plantID); ok {
		s.metrics.DetailCacheHit(true)
		return p, nil
	}
	s.metrics.DetailCacheHit(false)

	return s.details.GetOrFetch(ctx, plantID, func(ctx context.Context, id int) (catalog.Plant, error) {
		p, err := s.client.PlantDetail(ctx, id)
		s.metrics.CatalogFetch("plant", err)
		return p, err
	})
}

func (s *Session) nextFetchToken() uint64 {
	s.fetchSeq++
	return s.fetchSeq
}

func (s *Session) tokenCurrent(token uint64) bool {
	return token == s.fetchSeq
}
