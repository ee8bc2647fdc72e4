package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// RunPurgeExpiredTokens deletes refresh and password reset tokens that stopped
// being usable more than keepFor ago. keepFor 0 = no-op.
func RunPurgeExpiredTokens(ctx context.Context, keepFor time.Duration, purgers ...ports.TokenPurger) (purged int64, err error) {
	if keepFor <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-keepFor)
	for _, p := range purgers {
		n, e := p.PurgeExpired(ctx, cutoff)
		if e != nil {
			return purged, e // stop on first error
		}
		purged += n
	}
	return purged, nil
}

// Schedule runs RunPurgeExpiredTokens every interval until ctx is done.
func Schedule(ctx context.Context, interval, keepFor time.Duration, log zerolog.Logger, purgers ...ports.TokenPurger) {
	if interval <= 0 || keepFor <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := RunPurgeExpiredTokens(ctx, keepFor, purgers...)
			if err != nil {
				log.Warn().Err(err).Int64("purged", n).Msg("token purge failed")
				continue
			}
			log.Info().Int64("purged", n).Msg("expired tokens purged")
		}
	}
}
