// Package tracker владеет единственным сообщением со статусом сервера:
// создаёт его, редактирует, пересоздаёт, если его удалили, и не трогает API,
// пока отпечаток статуса не изменился.
//
// Первый Reconcile после старта всегда отправляет сообщение — id ещё нет,
// сравнивать не с чем.
package tracker
