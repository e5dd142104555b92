package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/armazemdigital/vendas-core.git/internal/sale"
)

// Server implements the remote backend's visible contract in memory,
// for local development and hermetic tests. GET /produtos is the
// public catalog read; everything else wants the auth-token header.
type Server struct {
	Store *Store
	Token string // empty disables the auth check
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/produtos", s.listProducts)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/clientes", s.listCustomers)
		r.Get("/vendas", s.listSales)
		r.Post("/vendas", s.createSale)
		r.Put("/vendas/{id}", s.updateSale)
		r.Delete("/vendas/{id}", s.deleteSale)
	})
	return r
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("auth-token") != s.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "acesso negado"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.Customers())
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.Products())
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.Sales())
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	created, err := s.Store.CreateSale(p)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateSale(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	updated, err := s.Store.UpdateSale(chi.URLParam(r, "id"), p)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrSaleNotFound) {
			code = http.StatusNotFound
		}
		writeJSON(w, code, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteSale(chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "venda excluída"})
}

// decodePayload rejects bodies that are unparseable or missing the
// fields no sale can do without.
func decodePayload(w http.ResponseWriter, r *http.Request) (sale.Payload, bool) {
	var p sale.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "json inválido"})
		return sale.Payload{}, false
	}
	if p.Customer.ID == "" || len(p.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "dados inválidos"})
		return sale.Payload{}, false
	}
	return p, true
}
