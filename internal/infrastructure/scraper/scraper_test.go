package scraper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"flat_price/internal/domain/entity"
	"flat_price/internal/infrastructure/scraper"
	"flat_price/pkg/httpx"
)

const page = `<html><body><table>
<tr class="tbb"><td>Продается двухкомнатная квартира в Ленинском районе. Общая площадь - 54.3 кв.м., жилая площадь - 30.1 кв.м., кухня - 8.5 кв.м., этаж 3/9. Цена - 3500000</td></tr>
<tr class="head"><td>Реклама</td></tr>
<tr class="tbb"><td>Однокомнатная квартира, Правобережный район, этаж 12/16. Цена - 2100000</td></tr>
</table></body></html>`

func encode(t *testing.T, s string) []byte {
	t.Helper()

	b, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)

	return b
}

type memoryRepo struct {
	listings []entity.RawListing
	err      error
}

func (r *memoryRepo) Append(_ context.Context, l *entity.RawListing) error {
	if r.err != nil {
		return r.err
	}
	l.ID = int64(len(r.listings) + 1)
	r.listings = append(r.listings, *l)
	return nil
}

func TestPage(t *testing.T) {
	rq := require.New(t)

	body := encode(t, page)

	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := &http.Client{
		Transport: httpx.NewUserAgentRoundTripper(
			httpx.NewLoggingRoundTripper(http.DefaultTransport, httpx.WithoutResponseBody()),
			"flat-price-scraper",
		),
	}

	listings, err := scraper.New(client, nil).Page(context.Background(), srv.URL)
	rq.NoError(err)
	rq.Len(listings, 2)
	rq.Equal("flat-price-scraper", userAgent)

	first := listings[0]
	rq.Equal(2, *first.RoomCount)
	rq.Equal(1, *first.District)
	rq.Equal(3, *first.Floor)
	rq.Equal(9, *first.TotalFloors)
	rq.Equal(54.3, *first.TotalArea)
	rq.Equal(30.1, *first.LiveArea)
	rq.Equal(8.5, *first.KitchenArea)
	rq.Equal(int64(3500000), *first.Price)
	rq.Contains(first.Description, "Ленинском районе")

	second := listings[1]
	rq.Equal(1, *second.RoomCount)
	rq.Equal(3, *second.District)
	rq.Equal(12, *second.Floor)
	rq.Equal(16, *second.TotalFloors)
	rq.Nil(second.TotalArea)
}

func TestRunSkipsFailedPages(t *testing.T) {
	rq := require.New(t)

	body := encode(t, page)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := scraper.New(srv.Client(), []string{srv.URL + "/slow", srv.URL + "/broken", srv.URL + "/ok"}).
		WithTimeout(200 * time.Millisecond)

	repo := &memoryRepo{}

	stats, err := s.Run(context.Background(), repo)
	rq.NoError(err)
	rq.Equal(scraper.Stats{Pages: 3, Failed: 2, Listings: 2}, stats)
	rq.Len(repo.listings, 2)
	rq.Equal(int64(2), repo.listings[1].ID)
}

func TestRunStopsOnStorageError(t *testing.T) {
	rq := require.New(t)

	body := encode(t, page)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	errStorage := errors.New("disk full")

	_, err := scraper.New(srv.Client(), []string{srv.URL, srv.URL}).Run(context.Background(), &memoryRepo{err: errStorage})
	rq.ErrorIs(err, errStorage)
}
