package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"okpups/entities"
	"okpups/repository"
)

const (
	suggestDebounce = 300 * time.Millisecond
	perTypeLimit    = 4
	totalLimit      = 6
)

// SuggestService backs the nav search dropdown. Input coalesces rapid
// keystrokes behind a debounce timer; when a query settles it fans out to
// the animal and product searches in parallel and merges a capped list.
// A generation counter makes the whole thing last-query-wins: a response
// whose triggering input has been superseded is dropped, never applied,
// regardless of the order the fetches resolve in.
type SuggestService struct {
	ar repository.AnimalRepository
	pr repository.ProductRepository

	debounce time.Duration

	mu        sync.Mutex
	gen       int
	timer     *time.Timer
	results   []entities.Suggestion
	highlight int
	open      bool
}

func NewSuggestService(animalRepo repository.AnimalRepository, productRepo repository.ProductRepository) *SuggestService {
	return &SuggestService{
		ar:       animalRepo,
		pr:       productRepo,
		debounce: suggestDebounce,
	}
}

// Input records a keystroke. Blank input clears and closes the list
// immediately; anything else (re)arms the debounce timer.
func (ss *SuggestService) Input(term string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.gen++
	if ss.timer != nil {
		ss.timer.Stop()
	}
	t := strings.TrimSpace(term)
	if t == "" {
		ss.results = nil
		ss.open = false
		ss.highlight = 0
		return
	}
	gen := ss.gen
	ss.timer = time.AfterFunc(ss.debounce, func() {
		ss.settle(gen, t)
	})
}

func (ss *SuggestService) settle(gen int, term string) {
	ss.mu.Lock()
	if gen != ss.gen {
		ss.mu.Unlock()
		return
	}
	ss.mu.Unlock()

	results, err := ss.Search(context.Background(), term)
	if err != nil {
		log.Printf("settle: %v", err)
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if gen != ss.gen {
		// a newer keystroke won while this query was in flight
		return
	}
	ss.results = results
	ss.open = true
	ss.highlight = 0
}

// Search runs the product and animal queries in parallel and merges them,
// products first, at most perTypeLimit each and totalLimit overall.
func (ss *SuggestService) Search(ctx context.Context, term string) (results []entities.Suggestion, err error) {
	var (
		wg      sync.WaitGroup
		prods   []entities.ProductPreview
		animals []entities.AnimalPreview
		pErr    error
		aErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		prods, pErr = ss.pr.SearchProducts(term, perTypeLimit)
	}()
	go func() {
		defer wg.Done()
		animals, aErr = ss.ar.SearchAnimals(term, perTypeLimit)
	}()
	wg.Wait()
	if pErr != nil {
		err = pErr
		return
	}
	if aErr != nil {
		err = aErr
		return
	}

	for _, p := range prods {
		results = append(results, entities.Suggestion{
			Type:  entities.ItemTypeProduct,
			Id:    p.Id,
			Name:  p.Name,
			Extra: p.Brand,
			Price: p.Price,
			Image: p.Image,
		})
	}
	for _, a := range animals {
		results = append(results, entities.Suggestion{
			Type:  entities.ItemTypeAnimal,
			Id:    a.Id,
			Name:  a.Name,
			Extra: a.Breed,
			Price: a.Price,
			Image: a.Image,
		})
	}
	if len(results) > totalLimit {
		results = results[:totalLimit]
	}
	return
}

// Suggestions snapshots the currently visible list.
func (ss *SuggestService) Suggestions() []entities.Suggestion {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	out := make([]entities.Suggestion, len(ss.results))
	copy(out, ss.results)
	return out
}

func (ss *SuggestService) Open() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.open
}

func (ss *SuggestService) Highlighted() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.highlight
}

// MoveDown and MoveUp clamp the highlight to [0, len-1].
func (ss *SuggestService) MoveDown() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.highlight < len(ss.results)-1 {
		ss.highlight++
	}
}

func (ss *SuggestService) MoveUp() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.highlight > 0 {
		ss.highlight--
	}
}

// Select returns the highlighted suggestion and the detail path to
// navigate to. ok is false when the list is closed or empty.
func (ss *SuggestService) Select() (sel entities.Suggestion, path string, ok bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if !ss.open || len(ss.results) == 0 {
		return
	}
	sel = ss.results[ss.highlight]
	path = sel.DetailPath()
	ok = true
	return
}

// Dismiss closes the list (the Escape key).
func (ss *SuggestService) Dismiss() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.open = false
	ss.highlight = 0
}
