package cache

import (
	"context"

	"github.com/matzehuels/tagkit/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the configured backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		return nonNil(NewFileCache(opts.Dir))
	case BackendRedis:
		if opts.Redis.Addr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache needs an address")
		}
		return nonNil(NewRedisCache(ctx, opts.Redis))
	case BackendMongo:
		if opts.Mongo.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache needs a uri")
		}
		return nonNil(NewMongoCache(ctx, opts.Mongo))
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: file, redis, mongo, none)", opts.Backend)
	}
}

// nonNil keeps a failed constructor from yielding a non-nil Cache that
// holds a nil pointer.
func nonNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
