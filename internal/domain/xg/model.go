package xg

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Default training configuration constants.
const (
	defaultLearningRate = 0.1
	defaultEpochs       = 1000
	defaultTestFraction = 0.2
	defaultRandomSeed   = 42

	classThreshold = 0.5
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithLearningRate sets the gradient-descent step size.
func WithLearningRate(lr float64) Option {
	return func(c *Classifier) {
		if lr > 0 {
			c.learningRate = lr
		}
	}
}

// WithEpochs sets the number of gradient-descent passes.
func WithEpochs(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.epochs = n
		}
	}
}

// WithTestFraction sets the held-out fraction used for the accuracy
// diagnostic. Zero disables the split and fits on every shot.
func WithTestFraction(f float64) Option {
	return func(c *Classifier) {
		if f >= 0 && f < 1 {
			c.testFraction = f
		}
	}
}

// WithSeed sets the seed for the train/test shuffle.
func WithSeed(seed int64) Option {
	return func(c *Classifier) {
		c.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split
	}
}

// Classifier is a logistic-regression goal classifier. Features are
// standardized before fitting so one learning rate serves both the basic
// and extended feature sets.
type Classifier struct {
	learningRate float64
	epochs       int
	testFraction float64
	rng          *rand.Rand

	weights  []float64
	bias     float64
	means    []float64
	stddevs  []float64
	accuracy float64
	fitted   bool
}

// NewClassifier creates a classifier with default training configuration.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		learningRate: defaultLearningRate,
		epochs:       defaultEpochs,
		testFraction: defaultTestFraction,
		rng:          rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // reproducible split
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit trains on the given shots with goal/no-goal as the binary label.
// Single-class labels are a fatal input condition: the engine cannot rank
// shots without a fitted model. Honors ctx between epochs.
func (c *Classifier) Fit(ctx context.Context, records []ShotRecord) error {
	if len(records) == 0 {
		return ErrNoShots
	}
	width := len(records[0].Features)
	goals := 0
	for _, r := range records {
		if len(r.Features) != width {
			return fmt.Errorf("shot %s: %w", r.EventID, ErrFeatureWidth)
		}
		if r.Goal {
			goals++
		}
	}
	if goals == 0 || goals == len(records) {
		return fmt.Errorf("%d goals in %d shots: %w", goals, len(records), ErrDegenerateLabels)
	}

	train, test := c.split(records)
	if singleClass(train) {
		// A thin match can shuffle all goals into the held-out slice;
		// fall back to fitting on everything. Accuracy then reads as a
		// resubstitution diagnostic, which is all it is used for anyway.
		train, test = records, records
	}

	c.means, c.stddevs = standardization(train, width)

	x := make([][]float64, len(train))
	y := make([]float64, len(train))
	for i, r := range train {
		x[i] = c.standardize(r.Features)
		if r.Goal {
			y[i] = 1
		}
	}

	c.weights = make([]float64, width)
	c.bias = 0
	n := float64(len(train))
	for epoch := 0; epoch < c.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("fit interrupted: %w", err)
		}
		gradW := make([]float64, width)
		gradB := 0.0
		for i, xi := range x {
			err := sigmoid(dot(c.weights, xi)+c.bias) - y[i]
			for j, v := range xi {
				gradW[j] += err * v
			}
			gradB += err
		}
		for j := range c.weights {
			c.weights[j] -= c.learningRate * gradW[j] / n
		}
		c.bias -= c.learningRate * gradB / n
	}

	c.fitted = true
	c.accuracy = c.evaluate(test)
	return nil
}

// Probability returns the calibrated probability of a goal for one feature
// vector. Output is in [0,1] by construction.
func (c *Classifier) Probability(features []float64) (float64, error) {
	if !c.fitted {
		return 0, ErrNotFitted
	}
	if len(features) != len(c.weights) {
		return 0, ErrFeatureWidth
	}
	return sigmoid(dot(c.weights, c.standardize(features)) + c.bias), nil
}

// Score writes xG onto every record. Each record's XG is set exactly once.
func (c *Classifier) Score(records []ShotRecord) error {
	for i := range records {
		p, err := c.Probability(records[i].Features)
		if err != nil {
			return fmt.Errorf("shot %s: %w", records[i].EventID, err)
		}
		records[i].XG = p
	}
	return nil
}

// Accuracy reports held-out classification accuracy from the last Fit.
// A sanity diagnostic, not a gate.
func (c *Classifier) Accuracy() float64 {
	return c.accuracy
}

// split shuffles a copy of records and carves off the held-out slice.
func (c *Classifier) split(records []ShotRecord) (train, test []ShotRecord) {
	if c.testFraction == 0 || len(records) < 5 {
		return records, records
	}
	shuffled := make([]ShotRecord, len(records))
	copy(shuffled, records)
	c.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	cut := int(float64(len(shuffled)) * (1 - c.testFraction))
	if cut < 1 {
		cut = 1
	}
	if cut == len(shuffled) {
		cut = len(shuffled) - 1
	}
	return shuffled[:cut], shuffled[cut:]
}

func (c *Classifier) evaluate(test []ShotRecord) float64 {
	if len(test) == 0 {
		return 0
	}
	correct := 0
	for _, r := range test {
		p, err := c.Probability(r.Features)
		if err != nil {
			continue
		}
		if (p > classThreshold) == r.Goal {
			correct++
		}
	}
	return float64(correct) / float64(len(test))
}

func (c *Classifier) standardize(features []float64) []float64 {
	z := make([]float64, len(features))
	for j, v := range features {
		z[j] = (v - c.means[j]) / c.stddevs[j]
	}
	return z
}

// standardization computes per-feature mean and stddev; constant features
// get stddev 1 so they standardize to 0 instead of dividing by zero.
func standardization(records []ShotRecord, width int) (means, stddevs []float64) {
	means = make([]float64, width)
	stddevs = make([]float64, width)
	n := float64(len(records))
	for _, r := range records {
		for j, v := range r.Features {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, r := range records {
		for j, v := range r.Features {
			d := v - means[j]
			stddevs[j] += d * d
		}
	}
	for j := range stddevs {
		stddevs[j] = math.Sqrt(stddevs[j] / n)
		if stddevs[j] == 0 {
			stddevs[j] = 1
		}
	}
	return means, stddevs
}

func singleClass(records []ShotRecord) bool {
	goals := 0
	for _, r := range records {
		if r.Goal {
			goals++
		}
	}
	return goals == 0 || goals == len(records)
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
