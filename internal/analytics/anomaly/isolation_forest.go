package anomaly

import (
	"math"
	"math/rand"
	"sort"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// IsolationForestDetector isolates outliers by random partitioning: points
// that take fewer random splits to isolate are more anomalous. The forest is
// rebuilt on every call from the provided sample, with a seeded RNG so
// repeated runs over the same input flag the same points.
type IsolationForestDetector struct{}

func init() {
	RegisterDetector("isolation_forest", &IsolationForestDetector{})
}

// Name returns the algorithm name.
func (d *IsolationForestDetector) Name() string {
	return "isolation_forest"
}

// Detect flags the top contamination-fraction of points by isolation score.
// Only points scoring above 0.5 qualify: by construction a score at or below
// 0.5 means the point is no easier to isolate than an average sample, so a
// constant series flags nothing.
func (d *IsolationForestDetector) Detect(series analytics.VitalSeries, cfg DetectorConfig) []Result {
	n := len(series)
	if n < cfg.MinSamples {
		return nil
	}

	values := series.Values()
	min, max := analytics.MinMax(values)
	if min == max {
		// Zero spread: nothing can be isolated.
		return nil
	}

	trees := cfg.Trees
	if trees <= 0 {
		trees = 100
	}
	sampleSize := cfg.SampleSize
	if sampleSize <= 0 || sampleSize > n {
		sampleSize = n
	}
	contamination := cfg.Contamination
	if contamination <= 0 || contamination >= 1 {
		contamination = 0.1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize))))

	// Average path length of each value across the forest.
	pathSums := make([]float64, n)
	sample := make([]float64, sampleSize)
	for t := 0; t < trees; t++ {
		for i := range sample {
			sample[i] = values[rng.Intn(n)]
		}
		tree := buildIsolationTree(sample, 0, maxDepth, rng)
		for i, v := range values {
			pathSums[i] += tree.pathLength(v, 0)
		}
	}

	c := averagePathLength(sampleSize)
	scores := make([]float64, n)
	for i := range scores {
		avgPath := pathSums[i] / float64(trees)
		scores[i] = math.Pow(2, -avgPath/c)
	}

	// Rank by score, ties broken by index for determinism.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	k := int(contamination * float64(n))
	if k < 1 {
		k = 1
	}

	var results []Result
	for _, idx := range order[:k] {
		if scores[idx] <= 0.5 {
			break
		}
		results = append(results, Result{Index: idx, Score: scores[idx]})
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	return results
}

// isolationNode is one node of a random partition tree over scalar values.
type isolationNode struct {
	split       float64
	left, right *isolationNode

	// leaf fields
	size int
}

func buildIsolationTree(values []float64, depth, maxDepth int, rng *rand.Rand) *isolationNode {
	min, max := analytics.MinMax(values)
	if len(values) <= 1 || depth >= maxDepth || min == max {
		return &isolationNode{size: len(values)}
	}

	split := min + rng.Float64()*(max-min)
	var left, right []float64
	for _, v := range values {
		if v < split {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isolationNode{size: len(values)}
	}

	return &isolationNode{
		split: split,
		left:  buildIsolationTree(left, depth+1, maxDepth, rng),
		right: buildIsolationTree(right, depth+1, maxDepth, rng),
	}
}

func (node *isolationNode) pathLength(v float64, depth int) float64 {
	if node.left == nil {
		// External node: credit the remaining expected depth of an
		// unbuilt subtree of this size.
		return float64(depth) + averagePathLength(node.size)
	}
	if v < node.split {
		return node.left.pathLength(v, depth+1)
	}
	return node.right.pathLength(v, depth+1)
}

// averagePathLength is c(n), the expected path length of an unsuccessful
// BST search over n values, used to normalize isolation depths.
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}
