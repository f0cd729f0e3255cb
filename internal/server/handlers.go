package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ryanphanna/Venture/pkg/board"
	"github.com/ryanphanna/Venture/pkg/catalog"
	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// Response header reporting whether a board came from the cache.
const headerCache = "X-Venture-Cache"

// =============================================================================
// Board
// =============================================================================

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	id := q.Get("profile")
	if id == "" {
		id = prefs.DefaultProfile
	}
	if err := verrors.ValidateProfileID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.cfg.Options
	opts.Now = s.cfg.Now()
	if v := q.Get("now"); v != "" {
		now, err := parseNow(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Now = now
	}
	if v := q.Get("cols"); v != "" {
		cols, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, verrors.New(verrors.ErrCodeInvalidInput, "cols must be an integer, got %q", v))
			return
		}
		opts.Columns = cols
	}

	p, err := prefs.GetOrDefault(r.Context(), s.cfg.Store, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.cfg.Runner.Execute(r.Context(), s.cfg.Catalog, p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if res.CacheHit {
		w.Header().Set(headerCache, "hit")
	} else {
		w.Header().Set(headerCache, "miss")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = board.Write(res.Board, w)
}

// parseNow accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func parseNow(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := catalog.ParseDate(v)
	if err != nil || d.IsZero() {
		return time.Time{}, verrors.New(verrors.ErrCodeInvalidInput,
			"now must be RFC 3339 or YYYY-MM-DD, got %q", v)
	}
	return d.Time(), nil
}

// =============================================================================
// Profiles
// =============================================================================

type profileResponse struct {
	ID          string             `json:"id"`
	Preferences *prefs.Preferences `json:"preferences"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	p := prefs.Default()
	if r.ContentLength != 0 {
		var err error
		if p, err = decodePreferences(w, r); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	id := prefs.NewProfileID()
	if err := s.save(r, id, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/profiles/"+id)
	writeJSON(w, http.StatusCreated, profileResponse{ID: id, Preferences: p})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{ID: id, Preferences: p})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := decodePreferences(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.save(r, id, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{ID: id, Preferences: p})
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleInterest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	interest := chi.URLParam(r, "interest")
	if err := verrors.ValidateInterest(interest); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, id, func(p *prefs.Preferences) error {
		p.ToggleInterest(interest)
		return nil
	})
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst := chi.URLParam(r, "institution")
	s.update(w, r, id, func(p *prefs.Preferences) error {
		if _, ok := s.cfg.Catalog.Institution(inst); !ok {
			return verrors.New(verrors.ErrCodeNotFound, "institution %q not found", inst)
		}
		p.MarkVisited(inst, s.cfg.Now())
		return nil
	})
}

// update applies fn to the stored profile, creating it from defaults when
// missing, and responds with the result.
func (s *Server) update(w http.ResponseWriter, r *http.Request, id string, fn func(*prefs.Preferences) error) {
	p, err := prefs.GetOrDefault(r.Context(), s.cfg.Store, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := fn(p); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.save(r, id, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{ID: id, Preferences: p})
}

func (s *Server) save(r *http.Request, id string, p *prefs.Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = s.cfg.Now().UTC()
	return s.cfg.Store.Put(r.Context(), id, p)
}

func decodePreferences(w http.ResponseWriter, r *http.Request) (*prefs.Preferences, error) {
	p := prefs.Default()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeInvalidProfile, err, "decode preferences")
	}
	return p, nil
}

// =============================================================================
// Catalog
// =============================================================================

func (s *Server) handleInterests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"interests": s.cfg.Catalog.Interests()})
}

type institutionResponse struct {
	catalog.Nearby
	Distance string `json:"distance,omitempty"`
}

func (s *Server) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from catalog.Point
	hasPoint := q.Get("lat") != "" || q.Get("lng") != ""
	if hasPoint {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			s.writeError(w, r, verrors.New(verrors.ErrCodeInvalidInput, "lat and lng must both be numbers"))
			return
		}
		from = catalog.Point{Lat: lat, Lng: lng}
	}

	insts := s.cfg.Catalog.Institutions
	if v := q.Get("radius_km"); v != "" {
		if !hasPoint {
			s.writeError(w, r, verrors.New(verrors.ErrCodeInvalidInput, "radius_km requires lat and lng"))
			return
		}
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			s.writeError(w, r, verrors.New(verrors.ErrCodeInvalidInput, "radius_km must be a non-negative number"))
			return
		}
		insts = catalog.WithinRadius(insts, from, radius)
	}

	out := []institutionResponse{}
	for _, n := range catalog.SortByDistance(insts, from) {
		resp := institutionResponse{Nearby: n}
		if !from.IsZero() {
			resp.Distance = catalog.FormatDistance(n.DistanceKm)
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, map[string]any{"institutions": out})
}
