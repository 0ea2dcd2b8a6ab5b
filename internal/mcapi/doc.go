// Package mcapi — клиент публичного статус-API Minecraft-серверов
// (api.mcsrvstat.us, v3) и вычисление отпечатков статуса.
//
//   - FetchStatus делает один GET с таймаутом (по умолчанию 4s) и всегда
//     возвращает пригодный ServerStatus: при любой ошибке — Offline().
//   - ComputeSignature сворачивает статус в Signature: online, игроки,
//     максимум и MOTD. Пинг и время намеренно не участвуют.
//
// Пример:
//
//	c := mcapi.NewClient("", 0) // дефолтный URL и таймаут
//	res := c.FetchStatus(ctx, mcapi.Address{Host: "play.example.org", Port: 25565})
//	if res.Err != nil {
//	    log.Println("offline:", res.Err)
//	}
//	sig := mcapi.ComputeSignature(res.Status)
package mcapi
