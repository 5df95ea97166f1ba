package version

import "fmt"

// Заполняются через -ldflags при сборке.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// String возвращает строку для логов при старте сервиса.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
