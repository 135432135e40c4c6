package httpx

type Option func(*LoggingRoundTripper)

func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithoutResponseBody logs only the status line and headers of responses.
// Scraped pages are large and their bodies are of no use in logs.
func WithoutResponseBody() Option {
	return func(rt *LoggingRoundTripper) {
		rt.dumpResponseBody = false
	}
}
