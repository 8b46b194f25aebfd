package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

const msgBusinessAdded = "Business added successfully"

var businessTabs = []string{"Employees or individuals", "Groups and teams", "Clients or customers"}

// HomePageData contains data for rendering the public home page
type HomePageData struct {
	Tabs []string
}

func (s *Server) HomeHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, pages, pageHome, s.newPageData(r, "home", "VOC for Business", HomePageData{Tabs: businessTabs}))
	}
}

// BusinessAccountPageData contains data for rendering the business account page
type BusinessAccountPageData struct {
	Tabs          []string
	ActiveTab     string
	BusinessTypes []vocapi.BusinessType
	Business      vocapi.Business
}

func activeBusinessTab(tab string) string {
	for _, t := range businessTabs {
		if t == tab {
			return t
		}
	}
	return businessTabs[0]
}

func (s *Server) BusinessAccountPageHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		pageData := s.newPageData(r, "business-account", "Business account", nil)

		types, err := s.apiFor(r).GetBusinessTypes(r.Context())
		if err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			log.Warn().Err(err).Msg("failed to load business types")
			if pageData.Error == "" {
				pageData.Error = userMessage(err, "Failed to fetch business types")
			}
		}

		pageData.Content = BusinessAccountPageData{
			Tabs:          businessTabs,
			ActiveTab:     activeBusinessTab(q.Get("tab")),
			BusinessTypes: types,
			Business: vocapi.Business{
				Name:    q.Get("name"),
				Address: q.Get("address"),
			},
		}
		s.renderPage(w, pages, pageBusinessAccount, pageData)
	}
}

// AddBusinessHandler registers a business with the API
func (s *Server) AddBusinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		business := vocapi.Business{
			Name:           strings.TrimSpace(r.FormValue("name")),
			BusinessTypeID: vocapi.ID(r.FormValue("businessTypeId")),
			Address:        strings.TrimSpace(r.FormValue("address")),
			Phone:          strings.TrimSpace(r.FormValue("phone")),
			Email:          strings.TrimSpace(r.FormValue("email")),
		}
		if business.Name == "" || business.Address == "" || business.BusinessTypeID == "" {
			redirectWithError(w, r, RouteBusinessAccount, "Name, type and address are required",
				"name", business.Name, "address", business.Address)
			return
		}

		if _, err := s.apiFor(r).AddRestaurant(r.Context(), business); err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			redirectWithError(w, r, RouteBusinessAccount, userMessage(err, "Failed to add restaurant"),
				"name", business.Name, "address", business.Address)
			return
		}

		log.Info().Str("business", business.Name).Msg("business added")
		redirectWithMessage(w, r, RouteBusinessAccount, msgBusinessAdded)
	}
}

// ValidateAddressHandler checks an address. HTMX requests receive an inline
// fragment, other callers receive the API result as JSON.
func (s *Server) ValidateAddressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		address := strings.TrimSpace(r.FormValue("address"))
		if address == "" {
			writeAddressResult(w, r, vocapi.AddressValidation{Message: "Please enter an address"})
			return
		}

		result, err := s.apiFor(r).ValidateAddress(r.Context(), address)
		if err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			writeAddressResult(w, r, vocapi.AddressValidation{Message: userMessage(err, "Failed to validate address")})
			return
		}
		writeAddressResult(w, r, *result)
	}
}

func writeAddressResult(w http.ResponseWriter, r *http.Request, v vocapi.AddressValidation) {
	if !isHTMXRequest(r) {
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Err(err).Msg("failed to encode address validation")
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	switch {
	case v.Valid && v.FormattedAddress != "":
		writeFragment(w, `<div class="field-ok">Address found: `, v.FormattedAddress, `</div>`)
	case v.Valid:
		writeFragment(w, `<div class="field-ok">`, "Address is valid", `</div>`)
	default:
		msg := v.Message
		if msg == "" {
			msg = "Address could not be validated"
		}
		writeFragment(w, `<div class="field-error">`, msg, `</div>`)
	}
}
