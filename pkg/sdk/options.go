package recipedex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "fs" or "valkey"
	dir       string
	addrs     []string
	password  string
	keyPrefix string

	imageDir    string
	imagePrefix string

	maxFeatures int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDir stores artifacts as files in dir.
func WithDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "fs"
		c.dir = dir
	})
}

// WithValkey stores artifacts in a Valkey instance under keyPrefix.
func WithValkey(addr, password, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
		c.keyPrefix = keyPrefix
	})
}

// WithImages sets the directory probed for recipe images and the
// web prefix of resolved paths. Without it results carry no image path.
func WithImages(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.imageDir = dir
	})
}

// WithImagePrefix overrides the "images" prefix of resolved image paths.
func WithImagePrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.imagePrefix = prefix
	})
}

// WithVocabulary caps the vectorizer vocabulary used by Train.
// Default: 5000.
func WithVocabulary(maxFeatures int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = maxFeatures
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
