package tracker

import "github.com/diamondburned/arikawa/v3/discord"

type Action int

const (
	ActionUnchanged Action = iota // отпечаток не изменился, API не трогали
	ActionCreated                 // первое сообщение
	ActionEdited
	ActionRecreated // edit не удался, отправили новое в том же цикле
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionCreated:
		return "created"
	case ActionEdited:
		return "edited"
	case ActionRecreated:
		return "recreated"
	case ActionFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome — явный результат одного Reconcile.
type Outcome struct {
	Action    Action
	MessageID discord.MessageID
	Err       error
}

// Changed — было ли реальное обращение к API, закончившееся успехом.
func (o Outcome) Changed() bool {
	return o.Action == ActionCreated || o.Action == ActionEdited || o.Action == ActionRecreated
}
