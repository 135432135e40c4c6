// Package modules runs long-living servers inside an errgroup with graceful
// shutdown on context cancellation.
package modules

import "flat_price/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
