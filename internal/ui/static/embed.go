// Пакет static — статические файлы сайта (CSS, JS, изображения),
// встроенные в бинарник через go:embed.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed css js img
var files embed.FS

// FileSystem возвращает файловую систему статики для http.FileServer.
// Корень — каталог static (пути вида /css/site.css).
func FileSystem() http.FileSystem {
	return http.FS(files)
}

// FS возвращает встроенные файлы как fs.FS.
func FS() fs.FS {
	return files
}
