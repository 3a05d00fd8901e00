package csvstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jhoicas/Cartera-api/pkg/logger"
)

// DefaultDebounce espera tras el último evento antes de recargar.
const DefaultDebounce = 500 * time.Millisecond

// Watcher recarga el store cuando cambian clientes o facturas en disco.
// El log de interacciones no se vigila: solo lo escribe este proceso.
type Watcher struct {
	dir      string
	reload   func() error
	log      *logger.Logger
	debounce time.Duration
	files    map[string]bool
}

// NewWatcher vigila dir y llama reload (normalmente Store.Load) con debounce.
func NewWatcher(dir string, reload func() error, log *logger.Logger, debounce time.Duration) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		reload:   reload,
		log:      log,
		debounce: debounce,
		files:    map[string]bool{CustomersFile: true, InvoicesFile: true},
	}
}

// Run bloquea hasta que ctx se cancela. Se vigila el directorio y no los archivos,
// porque los editores suelen reemplazar el archivo con un rename.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("crear watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("vigilar %s: %w", w.dir, err)
	}
	w.log.Info().Str("dir", w.dir).Dur("debounce", w.debounce).Msg("watcher de datos iniciado")

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("cambio detectado")
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			if err := w.reload(); err != nil {
				w.log.Error().Err(err).Msg("recarga por cambio en disco fallida, se conserva el estado anterior")
				continue
			}
			w.log.Info().Msg("datos recargados por cambio en disco")
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("error de fsnotify")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !w.files[filepath.Base(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
