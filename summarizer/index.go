package summarizer

import (
	"math"
	"sort"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Hit is one retrieved chunk. Distance is the squared L2 distance between
// normalized vectors, so 0 is identical and 4 is opposite.
type Hit struct {
	Text     string
	Distance float32
}

// Collection is an in-memory set of embedded chunks.
type Collection struct {
	mu      sync.RWMutex
	texts   []string
	vectors [][]float32
}

func (c *Collection) Add(texts []string, vectors [][]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range texts {
		c.texts = append(c.texts, texts[i])
		c.vectors = append(c.vectors, normalize(vectors[i]))
	}
}

func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.texts)
}

// Query returns the n nearest chunks, closest first. Chunks whose dimension
// differs from vector are skipped.
func (c *Collection) Query(vector []float32, n int) []Hit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := normalize(vector)
	hits := make([]Hit, 0, len(c.texts))
	skipped := 0
	for i, v := range c.vectors {
		if len(v) != len(q) {
			skipped++
			continue
		}
		hits = append(hits, Hit{Text: c.texts[i], Distance: squaredL2(q, v)})
	}
	if skipped > 0 {
		logger.Error("Skipping chunks embedded with a different dimension",
			zap.Int("skipped", skipped), zap.Int("dimension", len(q)))
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}

// Index holds one collection per summarized document, evicting the least
// recently used, plus the library collection used as a fallback.
type Index struct {
	documents *lru.Cache[string, *Collection]
	library   *Collection
}

func NewIndex(maxDocuments int) (*Index, error) {
	documents, err := lru.New[string, *Collection](maxDocuments)
	if err != nil {
		return nil, err
	}
	return &Index{documents: documents, library: &Collection{}}, nil
}

func (x *Index) Put(documentID string, c *Collection) {
	x.documents.Add(documentID, c)
}

func (x *Index) Get(documentID string) (*Collection, bool) {
	return x.documents.Get(documentID)
}

func (x *Index) Delete(documentID string) {
	x.documents.Remove(documentID)
}

func (x *Index) Library() *Collection {
	return x.library
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// squaredL2 expects vectors of equal length.
func squaredL2(a, b []float32) float32 {
	var d float32
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}
