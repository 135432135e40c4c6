// Package scraper скачивает страницы с объявлениями и разбирает их.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"

	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/extractor"
	"flat_price/pkg/contextx"
	"flat_price/pkg/logx"
)

const (
	// listingSelector: строка таблицы с одним объявлением.
	listingSelector = "tr.tbb"
	defaultTimeout  = 30 * time.Second
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ListingRepository interface {
	Append(ctx context.Context, l *entity.RawListing) error
}

type Stats struct {
	Pages    int
	Failed   int
	Listings int
}

type Scraper struct {
	client  *http.Client
	urls    []string
	timeout time.Duration
}

func New(client *http.Client, urls []string) *Scraper {
	return &Scraper{
		client:  client,
		urls:    urls,
		timeout: defaultTimeout,
	}
}

func (s *Scraper) WithTimeout(timeout time.Duration) *Scraper {
	s.timeout = timeout
	return s
}

// Run обходит все страницы и сохраняет каждое найденное объявление. Страница,
// которую не удалось скачать, пропускается. Ошибка записи в хранилище
// прерывает обход.
func (s *Scraper) Run(ctx context.Context, repo ListingRepository) (Stats, error) {
	var stats Stats

	for _, pageURL := range s.urls {
		if err := ctx.Err(); err != nil {
			return stats, err //nolint:wrapcheck
		}

		stats.Pages++

		listings, err := s.Page(ctx, pageURL)
		if err != nil {
			stats.Failed++

			if errors.Is(err, context.DeadlineExceeded) {
				logger(ctx).Warn("page timed out", slog.String(logx.FieldURL, pageURL), logx.Error(err))
			} else {
				logger(ctx).Error("page skipped", slog.String(logx.FieldURL, pageURL), logx.Error(err))
			}

			continue
		}

		for i := range listings {
			if err := repo.Append(ctx, &listings[i]); err != nil {
				return stats, fmt.Errorf("repo.Append: %w", err)
			}
			stats.Listings++
		}

		logger(ctx).Info(
			"page scraped",
			slog.String(logx.FieldURL, pageURL),
			slog.Int("listings", len(listings)),
		)
	}

	return stats, nil
}

// Page скачивает одну страницу в кодировке windows-1251 и разбирает каждую
// строку объявления.
func (s *Scraper) Page(ctx context.Context, pageURL string) ([]entity.RawListing, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(charmap.Windows1251.NewDecoder().Reader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var listings []entity.RawListing

	doc.Find(listingSelector).Each(func(_ int, row *goquery.Selection) {
		text := strings.TrimSpace(row.Text())
		if text == "" {
			return
		}
		listings = append(listings, extractor.Extract(text))
	})

	return listings, nil
}
