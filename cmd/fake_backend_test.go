package main

import (
	"encoding/json"
	"fmt"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"net/http"
	"strconv"
	"sync"
)

// fakeBackend stands in for the offers API: it stores posted offers and computes the aggregates from them.
type fakeBackend struct {
	mu     sync.Mutex
	offers []models.OfferDraft
}

func salary(value int) *int {
	return &value
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{offers: []models.OfferDraft{
		{UserName: "seed-1", OfferDate: "2024-01-10", Salary: salary(90000)},
		{UserName: "seed-2", OfferDate: "2024-02-11", Salary: salary(180000), BigTechOffer: 1},
	}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/offers", b.listOffers)
	mux.HandleFunc("POST /api/offers/", b.createOffer)
	mux.HandleFunc("GET /api/offers/salaries/average", b.averageSalary)
	mux.HandleFunc("GET /api/offers/salaries/groups", b.salaryGroups)
	mux.HandleFunc("GET /api/office-locations/", reference(
		map[string]any{"idOfficeLocation": 1, "fullName": "Corvallis, OR"},
		map[string]any{"idOfficeLocation": 7, "fullName": "Remote"},
	))
	mux.HandleFunc("GET /api/offer-sources/", reference(map[string]any{"idOfferSource": 2, "type": "Career Fair"}))
	mux.HandleFunc("GET /api/work-arrangements/", reference(map[string]any{"idWorkArrangement": 1, "arrangement": "Hybrid"}))
	mux.HandleFunc("GET /api/previous-experiences/", reference(map[string]any{"idPriorExperience": 1, "experienceType": "Internship"}))
	mux.HandleFunc("GET /api/previous-degrees/", reference(map[string]any{"idPreviousDegree": 1, "degreeType": "BS"}))
	return mux
}

func (b *fakeBackend) stored() []models.OfferDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.OfferDraft(nil), b.offers...)
}

func reference(items ...map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (b *fakeBackend) listOffers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.stored())
}

func (b *fakeBackend) createOffer(w http.ResponseWriter, r *http.Request) {
	var draft models.OfferDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if draft.UserName == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("userName cannot be empty"))
		return
	}

	b.mu.Lock()
	b.offers = append(b.offers, draft)
	id := len(b.offers)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"newOfferId": id})
}

func (b *fakeBackend) averageSalary(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if value := r.URL.Query().Get("max"); value != "" {
		limit, _ = strconv.Atoi(value)
	}

	total, count := 0, 0
	for _, offer := range b.stored() {
		if offer.Salary == nil || (limit >= 0 && *offer.Salary > limit) {
			continue
		}
		total += *offer.Salary
		count++
	}

	if count == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"average": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"average": float64(total) / float64(count)})
}

func (b *fakeBackend) salaryGroups(w http.ResponseWriter, r *http.Request) {
	const width = 50000

	counts := map[int]int{}
	highest := 0
	for _, offer := range b.stored() {
		if offer.Salary == nil {
			continue
		}
		bucket := *offer.Salary / width
		counts[bucket]++
		highest = max(highest, bucket)
	}

	groups := make([]models.SalaryGroup, 0, highest+1)
	for bucket := 0; bucket <= highest; bucket++ {
		groups = append(groups, models.SalaryGroup{
			SalaryRange: fmt.Sprintf("%d-%d", bucket*width, (bucket+1)*width-1),
			Count:       counts[bucket],
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"salariesByGroup": groups})
}
