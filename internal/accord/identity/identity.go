// Package identity hands out process-unique entity ids.
package identity

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Generator produces monotonically increasing ids starting at 1.
// It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	last snowflake.ID
}

// NewGenerator creates a new Generator whose first id is 1.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next id. Ids are never reused.
func (g *Generator) Next() snowflake.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last++
	return g.last
}

// Process-wide generator so ids stay unique across every World in the process.
var defaultGenerator = NewGenerator()

// Default returns the process-wide generator.
func Default() *Generator {
	return defaultGenerator
}

// Next returns the next id from the process-wide generator.
func Next() snowflake.ID {
	return defaultGenerator.Next()
}
