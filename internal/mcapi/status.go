package mcapi

// ServerStatus — нормализованный результат одного опроса.
// Недоступный сервер всегда выглядит как Offline(): online=false и пустые поля.
type ServerStatus struct {
	Online        bool
	PlayersOnline *int
	PlayersMax    *int
	MOTD          []string
	LatencyMs     *int
}

// Offline возвращает каноничный статус «оффлайн/недоступен».
func Offline() ServerStatus {
	return ServerStatus{}
}

// FetchResult — явный результат FetchStatus.
// Status всегда пригоден к использованию; Err объясняет, почему он деградировал в оффлайн.
type FetchResult struct {
	Status ServerStatus
	Err    error
}

// FirstMOTDLine — первая строка MOTD или "".
func (s ServerStatus) FirstMOTDLine() string {
	if len(s.MOTD) == 0 {
		return ""
	}
	return s.MOTD[0]
}

func intPtr(v int) *int { return &v }
