package mcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	ErrBadStatusCode = errors.New("mcapi: non-2xx response")
	ErrMalformed     = errors.New("mcapi: malformed payload")
)

// ответы mcsrvstat маленькие, больше мегабайта — явно что-то не то
const maxBodySize = 1 << 20

// FetchStatus делает ровно один GET к статус-API с таймаутом.
// Никогда не паникует и не возвращает ошибку наверх: любая проблема
// (таймаут, сеть, не-2xx, битый JSON) даёт Offline() с заполненным Err.
// Ретраев нет — следующий тик планировщика и есть ретрай.
func (c *Client) FetchStatus(ctx context.Context, addr Address) (res FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			res = FetchResult{Status: Offline(), Err: fmt.Errorf("mcapi: panic: %v", r)}
		}
	}()

	st, err := c.fetch(ctx, addr)
	if err != nil {
		return FetchResult{Status: Offline(), Err: err}
	}
	return FetchResult{Status: st}
}

func (c *Client) fetch(ctx context.Context, addr Address) (ServerStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/" + url.PathEscape(addr.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ServerStatus{}, fmt.Errorf("mcapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return ServerStatus{}, fmt.Errorf("mcapi: request %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return ServerStatus{}, fmt.Errorf("%w: %d", ErrBadStatusCode, resp.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&ar); err != nil {
		return ServerStatus{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return ar.normalize()
}

// normalize — приводим ответ к ServerStatus. Любая другая форма = недоступен.
func (ar *apiResponse) normalize() (ServerStatus, error) {
	if ar.Online == nil {
		return ServerStatus{}, fmt.Errorf("%w: no online field", ErrMalformed)
	}
	if !*ar.Online {
		return Offline(), nil
	}
	if ar.Players == nil {
		return ServerStatus{}, fmt.Errorf("%w: online without players", ErrMalformed)
	}

	st := ServerStatus{
		Online:        true,
		PlayersOnline: intPtr(ar.Players.Online),
		PlayersMax:    intPtr(ar.Players.Max),
	}
	if ar.MOTD != nil && len(ar.MOTD.Clean) > 0 {
		st.MOTD = append([]string(nil), ar.MOTD.Clean...)
	}
	if ar.Debug != nil {
		st.LatencyMs = intPtr(ar.Debug.CacheTime)
	}
	return st, nil
}
