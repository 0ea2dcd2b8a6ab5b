package mcapi

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Signature — компактный отпечаток видимого пользователю состояния.
// Сравнивается через ==.
type Signature [32]byte

// OfflineSignature — один и тот же отпечаток для любого оффлайна,
// независимо от причины.
var OfflineSignature = Signature(blake3.Sum256([]byte("OFFLINE")))

func (s Signature) String() string {
	if s == OfflineSignature {
		return "offline"
	}
	return hex.EncodeToString(s[:6])
}

// Core Deterministic Encoding: одинаковые данные -> одинаковые байты.
var sigEncMode cbor.EncMode

func init() {
	var err error
	sigEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("mcapi: CBOR encoder initialization failed: " + err.Error())
	}
}

// sigFields — измерения, попадающие в отпечаток. Пинга и времени тут нет:
// иначе сообщение редактировалось бы каждый тик без изменений в игре.
type sigFields struct {
	Online  bool     `cbor:"1,keyasint"`
	Players int      `cbor:"2,keyasint"`
	Max     int      `cbor:"3,keyasint"`
	MOTD    []string `cbor:"4,keyasint"`
}

// ComputeSignature — чистая функция статуса.
// В отпечаток идёт весь MOTD (его первая строка включительно), т.к. в embed
// выводятся все строки.
func ComputeSignature(st ServerStatus) Signature {
	if !st.Online {
		return OfflineSignature
	}

	f := sigFields{Online: true, Players: -1, Max: -1, MOTD: st.MOTD}
	if st.PlayersOnline != nil {
		f.Players = *st.PlayersOnline
	}
	if st.PlayersMax != nil {
		f.Max = *st.PlayersMax
	}
	if len(f.MOTD) == 0 {
		f.MOTD = nil
	}

	b, err := sigEncMode.Marshal(f)
	if err != nil {
		// фиксированная структура без интерфейсов — сюда не попадаем
		panic("mcapi: signature encoding: " + err.Error())
	}
	return Signature(blake3.Sum256(b))
}
