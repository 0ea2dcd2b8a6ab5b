package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/EgorLis/mcstatusbot/internal/mcapi"
)

// ErrNotFound — отслеживаемого сообщения больше нет (удалили руками и т.п.).
var ErrNotFound = errors.New("tracker: message not found")

// Channel — минимум, что трекеру нужно от канала платформы.
type Channel interface {
	Send(ctx context.Context, embed discord.Embed) (discord.MessageID, error)
	// Edit сначала достаёт сообщение, потом редактирует его.
	Edit(ctx context.Context, id discord.MessageID, embed discord.Embed) error
}

// RenderFunc строит embed по статусу. Оформление — не забота трекера.
type RenderFunc func(mcapi.ServerStatus) discord.Embed

// TrackedMessage — состояние единственного сообщения со статусом.
// Живёт только в памяти процесса.
type TrackedMessage struct {
	MessageID     discord.MessageID
	LastSignature mcapi.Signature
	HasSignature  bool
}

type Tracker struct {
	mu     sync.Mutex
	msg    TrackedMessage
	render RenderFunc
	log    *log.Logger
}

func New(render RenderFunc, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{render: render, log: logger}
}

// Snapshot возвращает копию текущего состояния.
func (t *Tracker) Snapshot() TrackedMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.msg
}

// Forget сбрасывает id: следующий Reconcile отправит новое сообщение.
func (t *Tracker) Forget() {
	t.mu.Lock()
	t.msg.MessageID = 0
	t.mu.Unlock()
}

// Reconcile приводит сообщение в канале к статусу st.
//
//  1. id есть и отпечаток тот же — ничего не делаем;
//  2. id есть — fetch+edit; при любой ошибке сбрасываем id и идём дальше;
//  3. id нет — отправляем новое и запоминаем его id;
//  4. при успехе запоминаем отпечаток.
//
// Ошибки не всплывают: Outcome.Err для лога, а состояние остаётся таким,
// чтобы следующий цикл повторил попытку.
func (t *Tracker) Reconcile(ctx context.Context, ch Channel, st mcapi.ServerStatus, sig mcapi.Signature) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.msg.MessageID.IsValid() && t.msg.HasSignature && t.msg.LastSignature == sig {
		return Outcome{Action: ActionUnchanged, MessageID: t.msg.MessageID}
	}

	embed := t.render(st)

	var editErr error
	if id := t.msg.MessageID; id.IsValid() {
		editErr = ch.Edit(ctx, id, embed)
		if editErr == nil {
			t.remember(id, sig)
			return Outcome{Action: ActionEdited, MessageID: id}
		}
		if errors.Is(editErr, ErrNotFound) {
			t.log.Info("tracked message is gone, recreating", "message", id)
		} else {
			t.log.Warn("edit failed, recreating", "message", id, "err", editErr)
		}
		t.msg.MessageID = 0
	}

	id, err := ch.Send(ctx, embed)
	if err != nil {
		if editErr != nil {
			err = errors.Join(fmt.Errorf("edit: %w", editErr), err)
		}
		return Outcome{Action: ActionFailed, Err: fmt.Errorf("tracker: send: %w", err)}
	}
	t.remember(id, sig)

	if editErr != nil {
		return Outcome{Action: ActionRecreated, MessageID: id}
	}
	return Outcome{Action: ActionCreated, MessageID: id}
}

func (t *Tracker) remember(id discord.MessageID, sig mcapi.Signature) {
	t.msg.MessageID = id
	t.msg.LastSignature = sig
	t.msg.HasSignature = true
}
