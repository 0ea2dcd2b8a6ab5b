package dsclient

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

// NewRouter — роутер слэш-команд с нашими middleware.
// Медленные хэндлеры (опрос сервера до 4s) автоматически откладываются.
// Первый добавленный middleware — внешний; Deferrable запускает хэндлер
// в своей горутине, поэтому recover ставим после него.
func (c *Client) NewRouter() *cmdroute.Router {
	r := cmdroute.NewRouter()
	r.Use(cmdroute.Deferrable(c.st, cmdroute.DeferOpts{}))
	r.Use(c.recoverMiddleware)
	return r
}

// RegisterCommands вешает роутер на gateway и перезаписывает глобальные команды приложения.
func (c *Client) RegisterCommands(r *cmdroute.Router, cmds []api.CreateCommandData) error {
	c.st.AddInteractionHandler(r)
	if err := cmdroute.OverwriteCommands(c.st, cmds); err != nil {
		return fmt.Errorf("dsclient: overwrite commands: %w", err)
	}
	c.log.Info("commands registered", "count", len(cmds))
	return nil
}

// паника в хэндлере команды не должна ронять gateway
func (c *Client) recoverMiddleware(next cmdroute.InteractionHandler) cmdroute.InteractionHandler {
	return cmdroute.InteractionHandlerFunc(func(ctx context.Context, ev *discord.InteractionEvent) (resp *api.InteractionResponse) {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("panic in interaction", "panic", r, "stack", string(debug.Stack()))
				resp = &api.InteractionResponse{
					Type: api.MessageInteractionWithSource,
					Data: EphemeralText("Something went wrong, try again later."),
				}
			}
		}()
		return next.HandleInteraction(ctx, ev)
	})
}

// EphemeralText — ответ, видимый только вызвавшему.
func EphemeralText(text string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content: option.NewNullableString(text),
		Flags:   discord.EphemeralMessage,
	}
}
