package mcapi

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.mcsrvstat.us/3"
	DefaultTimeout = 4 * time.Second

	userAgent = "mcstatusbot/1.0 (+https://github.com/EgorLis/mcstatusbot)"
)

// Address — host:port отслеживаемого сервера.
type Address struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Conf — секция server в конфиге бота.
type Conf struct {
	Address `yaml:",inline"`
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// Создает новый клиент статус-API. Пустые параметры заменяются дефолтами.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		// таймаут — через контекст запроса (см. fetch)
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Создает новый клиент статус-API (задаем через файл конфигурации)
func NewClientFromConf(conf Conf) *Client {
	return NewClient(conf.APIURL, conf.Timeout)
}

// Timeout возвращает лимит на один запрос.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// apiResponse — то, что мы читаем из ответа mcsrvstat (v3).
// Указатели нужны, чтобы отличить «поле отсутствует» от нулевого значения.
type apiResponse struct {
	Online  *bool `json:"online"`
	Players *struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	MOTD *struct {
		Clean []string `json:"clean"`
	} `json:"motd"`
	Debug *struct {
		CacheTime int `json:"cachetime"`
	} `json:"debug"`
}
