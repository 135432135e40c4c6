// Package connectors holds lazily initialised clients of external stores.
package connectors

import "flat_price/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
