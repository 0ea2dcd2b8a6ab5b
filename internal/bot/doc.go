// Package bot — “склейка” вокруг mcapi, tracker и dsclient, реализующая
// бота статуса Minecraft-сервера. Бот:
//   - раз в poll.interval (по умолчанию 6s) опрашивает статус-API;
//   - держит в канале одно сообщение-карточку и правит его только когда
//     видимое состояние изменилось (онлайн, игроки, MOTD);
//   - пересоздаёт карточку, если её удалили;
//   - ставит себе presence "Watching N Players" / "Watching Offline";
//   - отвечает на /status и /ip.
//
// Жизненный цикл:
//   - Загрузить конфиг: LoadConfig(path) + Validate().
//   - Создать бота через New(cfg, fetcher, platform, logger).
//   - На READY вызвать Start(ctx): сразу один цикл, дальше по таймеру.
//     Повторные READY (re-identify) игнорируются.
//   - Остановить Stop().
//
// Пример:
//
//	cfg, err := bot.LoadConfig("conf/mcstatusbot.yaml")
//	if err != nil { log.Fatal(err) }
//	if err := cfg.Validate(); err != nil { log.Fatal(err) }
//
//	b := bot.New(cfg, mcapi.NewClientFromConf(cfg.Server), ds, logger)
//	ds.OnReady = func(discord.User) { go b.Start(ctx) }
//	defer b.Stop()
//
// Конфигурация:
//   - YAML (см. BotConfig): server{host,port,api_url,timeout},
//     discord{token,channel_id}, poll{interval}, log{level}. Токен можно
//     передать через $DISCORD_TOKEN. Отсутствующий файл создаётся шаблоном.
package bot
