package config

import (
	"strconv"
	"time"
)

type Scraper struct {
	// URLs задаёт страницы явно. Если список пуст, страницы строятся из
	// BaseURL и Pages.
	URLs      []string      `env:"SCRAPER_URLS" envSeparator:","`
	BaseURL   string        `env:"SCRAPER_BASE_URL" envDefault:"http://citystar.ru/detal.htm?v_id=1&d=43&nm=%CE%E1%FA%FF%E2%EB%E5%ED%E8%FF+%2D+%CF%F0%EE%E4%E0%EC+%EA%E2%E0%F0%F2%E8%F0%F3+%E2+%E3%2E+%CC%E0%E3%ED%E8%F2%EE%E3%EE%F0%F1%EA%E5"`
	Pages     int           `env:"SCRAPER_PAGES" envDefault:"6"`
	Timeout   time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"SCRAPER_USER_AGENT" envDefault:"Mozilla/5.0 (compatible; flat-price/1.0)"`
}

// PageURLs: первая страница без номера, следующие с номерами 1..Pages-1.
func (s Scraper) PageURLs() []string {
	if len(s.URLs) > 0 {
		return s.URLs
	}

	urls := make([]string, 0, s.Pages)
	for i := range s.Pages {
		if i == 0 {
			urls = append(urls, s.BaseURL)
			continue
		}
		urls = append(urls, s.BaseURL+strconv.Itoa(i))
	}

	return urls
}
