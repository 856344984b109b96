package query

import "runtime"

// DefaultBlockSize is the number of points scanned per block when no block
// size is configured.
const DefaultBlockSize = 4096

// Options configures the parallel compaction query
type Options struct {
	BlockSize int // points per block; values below 1 select DefaultBlockSize
	Workers   int // concurrently scanned blocks; values below 1 select GOMAXPROCS
}

// DefaultOptions returns the default parallel query configuration
func DefaultOptions() Options {
	return Options{
		BlockSize: DefaultBlockSize,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

func (o Options) normalized() Options {
	if o.BlockSize < 1 {
		o.BlockSize = DefaultBlockSize
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}
