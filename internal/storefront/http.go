package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PlantStore/internal/catalog"
	"PlantStore/pkg/kit"
)

const maxCartBody = 4 << 10

// Server holds the storefront's dependencies and exposes its routes.
type Server struct {
	Sessions *Sessions
	Catalog  *catalog.Client
	PageSize int
	Log      *zap.Logger
	Metrics  *Metrics
	Limiter  *kit.IPRateLimiter
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.Catalog.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not reachable", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if s.Limiter != nil {
		r.With(s.Limiter.Middleware).Post("/sessions", s.createSession)
	} else {
		r.Post("/sessions", s.createSession)
	}

	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Get("/", s.view)
		r.Post("/category/{cid}", s.selectCategory)
		r.Post("/page/next", s.nextPage)
		r.Post("/page/prev", s.prevPage)
		r.Post("/page/{n}", s.goToPage)
		r.Post("/cart", s.addToCart)
		r.Post("/cart/{lineID}/increment", s.incrementLine)
		r.Post("/cart/{lineID}/decrement", s.decrementLine)
		r.Delete("/cart/{lineID}", s.removeLine)
		r.Get("/plants/{pid}", s.plantDetail)
	})

	return r
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := newSession(s.Catalog, s.PageSize, s.Log, s.Metrics)
	sess.Boot(r.Context())
	s.Sessions.Put(sess)
	s.Metrics.SessionStarted()

	kit.WriteJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) selectCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	cid := chi.URLParam(r, "cid")
	if err := sess.SelectCategory(r.Context(), cid); err != nil {
		if errors.Is(err, ErrBadCategory) {
			kit.WriteError(w, r, http.StatusBadRequest, "bad category id", map[string]any{"category": cid})
			return
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) goToPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad page number", nil)
		return
	}

	// Out-of-range pages are a silent no-op; the snapshot simply shows the
	// unchanged page.
	sess.GoToPage(n)
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) nextPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.NextPage()
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) prevPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.PrevPage()
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

type addToCartReq struct {
	PlantID int `json:"plant_id"`
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req, err := decodeAddToCart(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	sess.AddToCart(req.PlantID)
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) incrementLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.IncrementLine(chi.URLParam(r, "lineID"))
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) decrementLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.DecrementLine(chi.URLParam(r, "lineID"))
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) removeLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.RemoveLine(chi.URLParam(r, "lineID"))
	kit.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) plantDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad plant id", nil)
		return
	}

	p, err := sess.PlantDetail(r.Context(), pid)
	if err != nil {
		// The modal shows a failed-detail message; nothing is cached, a
		// retry goes back to the upstream.
		if s.Log != nil {
			s.Log.Warn("plant detail failed", zap.Error(err), zap.Int("plant_id", pid))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "plant detail unavailable", map[string]any{"plant_id": pid})
		return
	}

	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sid := chi.URLParam(r, "sid")
	sess, ok := s.Sessions.Get(sid)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "session not found", map[string]any{"session_id": sid})
		return nil, false
	}
	return sess, true
}

func decodeAddToCart(w http.ResponseWriter, r *http.Request) (addToCartReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCartBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req addToCartReq
	if err := dec.Decode(&req); err != nil {
		return addToCartReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addToCartReq{}, errors.New("extra data after json object")
	}
	return req, nil
}
