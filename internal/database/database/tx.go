package database

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/pkg/retry"
)

// InTx runs fn in one transaction. A failure that IsTransient recognises, or
// whose message matches cfg.RetryableErrors (dropped connections and the
// like), is retried as a whole according to cfg; what still fails is
// reported as ErrStorage. Request errors returned by fn are not retried.
func InTx(
	ctx context.Context,
	db *gorm.DB,
	cfg retry.Config,
	logger *zap.SugaredLogger,
	op string,
	fn func(tx *gorm.DB) error,
) error {
	patterns := cfg.RetryableErrors
	transient := func(err error) bool {
		return IsTransient(err) || retry.MatchesAny(err, patterns)
	}
	cfg.Retryable = transient
	cfg.OnRetry = func(attempt int, err error) {
		logger.Warnw("transaction aborted, retrying",
			"op", op,
			"attempt", attempt,
			"error", err,
		)
	}

	return retry.Do(ctx, cfg, func() error {
		err := db.WithContext(ctx).Transaction(fn)
		if err != nil && transient(err) && !errors.Is(err, ErrStorage) {
			return StorageError(op, err)
		}
		return err
	})
}
