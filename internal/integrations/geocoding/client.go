package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	_ "time/tzdata"
)

// Client клиент картографического сервиса (reverse geocoding и часовые пояса)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Resolve определяет подпись местоположения и часовой пояс по координатам
func (c *Client) Resolve(ctx context.Context, latitude, longitude float64) (*Place, error) {
	c.log.Info("Geocoding: resolving lat=%f, lng=%f", latitude, longitude)

	label, err := c.Location(ctx, latitude, longitude)
	if err != nil {
		c.log.Error("Geocoding: failed to resolve location: %v", err)
		return nil, err
	}

	tz, err := c.TimeZone(ctx, latitude, longitude)
	if err != nil {
		c.log.Error("Geocoding: failed to resolve time zone: %v", err)
		return nil, err
	}

	return &Place{Label: label, TimeZone: tz}, nil
}

// Location подпись вида "{Municipality}, {Subdivision}. {Country}"
func (c *Client) Location(ctx context.Context, latitude, longitude float64) (string, error) {
	var resp reverseAddressResponse
	if err := c.get(ctx, "/search/address/reverse/json", latitude, longitude, nil, &resp); err != nil {
		return "", err
	}

	if len(resp.Addresses) == 0 || resp.Addresses[0].Address.Country == "" {
		return "", ErrLocationNotFound
	}

	a := resp.Addresses[0].Address
	return fmt.Sprintf("%s, %s. %s", a.Municipality, a.CountrySubdivision, a.Country), nil
}

// TimeZone IANA идентификатор часового пояса
func (c *Client) TimeZone(ctx context.Context, latitude, longitude float64) (string, error) {
	var resp timeZoneResponse
	extra := url.Values{"options": {"all"}}
	if err := c.get(ctx, "/timezone/byCoordinates/json", latitude, longitude, extra, &resp); err != nil {
		return "", err
	}

	if len(resp.TimeZones) == 0 || resp.TimeZones[0].ID == "" {
		return "", ErrTimeZoneNotFound
	}

	// Проверяем, что идентификатор известен рантайму, иначе расписание не построить
	if _, err := time.LoadLocation(resp.TimeZones[0].ID); err != nil {
		return "", fmt.Errorf("%w: unknown time zone %q", ErrInvalidResponse, resp.TimeZones[0].ID)
	}

	return resp.TimeZones[0].ID, nil
}

func (c *Client) get(ctx context.Context, path string, latitude, longitude float64, extra url.Values, out interface{}) error {
	query := url.Values{}
	for k, v := range extra {
		query[k] = v
	}
	query.Set("api-version", "1.0")
	query.Set("query", strconv.FormatFloat(latitude, 'f', -1, 64)+","+strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("subscription-key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrLocationNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
