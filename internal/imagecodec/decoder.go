package imagecodec

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

const defaultWorkers = 4

type Config struct {
	Workers int
	Logger  *logging.Logger
}

// Decoder converts image payloads to data URIs on a bounded worker pool and
// reports completion through a callback.
type Decoder struct {
	pool   *ants.Pool
	logger *logging.Logger
}

func NewDecoder(cfg Config) (*Decoder, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(rec any) {
		logger.Error("image decode worker panicked", "panic", fmt.Sprint(rec))
	}))
	if err != nil {
		return nil, crerr.Wrap(err, "create image decoder pool")
	}

	return &Decoder{pool: pool, logger: logger}, nil
}

// Decode schedules the conversion and returns immediately. done is called
// exactly once when the decode was scheduled; a scheduling failure is
// returned instead and done is never called.
func (d *Decoder) Decode(ctx context.Context, image player.Image, done func(dataURI string, err error)) error {
	if done == nil {
		return crerr.Mark(crerr.New("decode callback is required"), usecase.ErrDecode)
	}

	err := d.pool.Submit(func() {
		uri, err := d.decode(ctx, image)
		done(uri, err)
	})
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "schedule image decode"), usecase.ErrDecode)
	}
	return nil
}

func (d *Decoder) decode(ctx context.Context, image player.Image) (uri string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.ErrorContext(ctx, "image decode panicked", "panic", fmt.Sprint(rec))
			uri, err = "", crerr.Mark(crerr.Newf("image decode panicked: %v", rec), usecase.ErrDecode)
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", crerr.Mark(crerr.Wrap(ctxErr, "image decode cancelled"), usecase.ErrDecode)
	}
	return EncodeDataURI(image)
}

func (d *Decoder) Running() int {
	return d.pool.Running()
}

// Release stops the pool; subsequent Decode calls fail with usecase.ErrDecode.
func (d *Decoder) Release() {
	d.pool.Release()
}
