// Package dsclient — тонкая обёртка над arikawa (Discord): подключение к
// gateway, поиск канала, отправка/редактирование embed-сообщений, presence
// и слэш-команды.
//
// События (колбэки поля структуры):
//   - OnConnecting, OnReady (после каждого READY, в т.ч. после re-identify),
//     OnResumed.
//
// Ошибки 404 / Unknown Message при редактировании заворачиваются в
// tracker.ErrNotFound, чтобы трекер понимал, что сообщение надо пересоздать.
//
// Пример:
//
//	ds := dsclient.New(token, channelID, logger)
//	ds.OnReady = func(me discord.User) { log.Println("ready as", me.Tag()) }
//	if err := ds.Connect(ctx); err != nil { log.Fatal(err) }
//	defer ds.Disconnect()
//
//	ch, err := ds.ResolveChannel(ctx)
//	if err != nil { return err }
//	id, err := ch.Send(ctx, dsclient.RenderEmbed(st, "play.example.org", time.Now()))
package dsclient
