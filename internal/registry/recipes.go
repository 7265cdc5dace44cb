package registry

import (
	"fmt"
	"sync"
)

// RecipeNames hands out unique recipe names. The first request for a name
// returns it unchanged; later ones get "_1", "_2", ... appended.
type RecipeNames struct {
	mu   sync.Mutex
	uses map[string]int
}

func NewRecipeNames() *RecipeNames {
	return &RecipeNames{uses: map[string]int{}}
}

// Next returns the next free name derived from name.
func (r *RecipeNames) Next(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.uses[name]
	r.uses[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, n)
}
