package folio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
)

// This file implements a PriceProvider backed by the EODHD.com API.

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskCache derives a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// EODHD fetches end-of-day closing prices from eodhd.com. Responses are
// cached on disk with a daily expiry, so repeated runs within a day do not
// hit the API again.
type EODHD struct {
	apiKey string
	base   string
	client *http.Client
}

// NewEODHD creates a provider using the given API key.
func NewEODHD(apiKey string) *EODHD {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return &EODHD{apiKey: apiKey, base: "https://eodhd.com/api", client: client}
}

// eodhdBar is one row of the EODHD end-of-day response.
type eodhdBar struct {
	Date          string  `json:"date"`
	AdjustedClose float64 `json:"adjusted_close"`
}

func (e *EODHD) eod(instrument string, limit int) ([]eodhdBar, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("no EODHD API key configured")
	}
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&period=d&api_token=%s",
		e.base, url.PathEscape(instrument), url.QueryEscape(e.apiKey))
	if limit > 0 {
		addr += fmt.Sprintf("&order=d&limit=%d", limit)
	}
	var bars []eodhdBar
	if err := jwget(e.client, addr, &bars); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no end-of-day data for %q", instrument)
	}
	return bars, nil
}

func (e *EODHD) LastClose(instrument string) (Close, error) {
	bars, err := e.eod(instrument, 1)
	if err != nil {
		return Close{}, err
	}
	on, err := ParseDate(bars[0].Date)
	if err != nil {
		return Close{}, err
	}
	return Close{Date: on, Price: bars[0].AdjustedClose}, nil
}

func (e *EODHD) FullHistory(instrument string) (*Series, error) {
	bars, err := e.eod(instrument, 0)
	if err != nil {
		return nil, err
	}
	s := &Series{}
	for _, bar := range bars {
		on, err := ParseDate(bar.Date)
		if err != nil {
			return nil, err
		}
		s.Append(on, bar.AdjustedClose)
	}
	return s, nil
}
