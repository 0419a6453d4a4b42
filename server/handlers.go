package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/consortium"
	"github.com/etnz/consortium/date"
	"github.com/etnz/consortium/store"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errBadRequest = errors.New("bad request")

// writeError maps err to a status code: 400 for invalid parameters, 404
// for unknown ids, 500 otherwise.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	default:
		log.Error().Err(err).Str("request_id", RequestID(r.Context())).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request, report string, fn func(*consortium.Pool) (any, error)) {
	v, err := s.compute(r.Context(), report, r.URL.Path+"?"+r.URL.RawQuery, fn)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/summary
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, "summary", func(p *consortium.Pool) (any, error) {
		return p.Summary(), nil
	})
}

// GET /api/clients
func (s *Server) getClients(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, "clients", func(p *consortium.Pool) (any, error) {
		return nonNil(p.Clients), nil
	})
}

// GET /api/clients/{id} returns the client and its cumulative gain history.
func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid client id %q", errBadRequest, chi.URLParam(r, "id")))
		return
	}
	s.reply(w, r, "client", func(p *consortium.Pool) (any, error) {
		c, ok := p.Client(consortium.ClientID(id))
		if !ok {
			return nil, fmt.Errorf("client %d: %w", id, store.ErrNotFound)
		}
		series, err := p.Timeseries()
		if err != nil {
			return nil, err
		}
		if ts, ok := series[c.ID]; ok {
			return ts, nil
		}
		// no profit event yet
		return &consortium.ClientTimeseries{Client: c}, nil
	})
}

// GET /api/profits
func (s *Server) getProfits(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, "profits", func(p *consortium.Pool) (any, error) {
		return nonNil(p.Events), nil
	})
}

// GET /api/allocations?date=YYYY-MM-DD returns the allocation of a single
// day, any day. Without date, it returns the allocation of every profit
// event, optionally restricted with from and to.
func (s *Server) getAllocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	on, err := queryDate(q.Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var rng date.Range
	if rng.From, err = queryDate(q.Get("from")); err != nil {
		writeError(w, r, err)
		return
	}
	if rng.To, err = queryDate(q.Get("to")); err != nil {
		writeError(w, r, err)
		return
	}

	s.reply(w, r, "allocations", func(p *consortium.Pool) (any, error) {
		if !on.IsZero() {
			return nonNil(p.Allocate(on)), nil
		}
		rows, err := p.AllocationReport(rng)
		return nonNil(rows), err
	})
}

// GET /api/timeseries returns the history of every client, ordered by id.
func (s *Server) getTimeseries(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, "timeseries", func(p *consortium.Pool) (any, error) {
		series, err := p.Timeseries()
		if err != nil {
			return nil, err
		}
		return consortium.SortedSeries(series), nil
	})
}

// queryDate parses an optional date parameter.
func queryDate(v string) (date.Date, error) {
	if v == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(v)
	if err != nil {
		return d, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return d, nil
}

// nonNil makes empty lists encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
