package events

import "net/http"

// RoomServer держит websocket подключение в комнате
type RoomServer interface {
	Serve(w http.ResponseWriter, r *http.Request, room string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
