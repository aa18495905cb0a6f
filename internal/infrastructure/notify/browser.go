// Package notify implementa los canales de notificación (browser, email, slack).
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// DefaultFeedSize notificaciones browser que se conservan para el polling del dashboard.
const DefaultFeedSize = 50

// ErrChannelClosed el canal ya fue cerrado.
var ErrChannelClosed = errors.New("canal browser cerrado")

// BrowserChannel feed en memoria que el dashboard consulta, con el estado de permiso
// default → granted | denied. También implementa notification.Permission.
type BrowserChannel struct {
	mu       sync.Mutex
	state    string
	pending  chan struct{} // no nil mientras hay una solicitud de permiso abierta
	feed     []notification.Notification
	feedSize int
	timeout  time.Duration
	closed   bool
	done     chan struct{}
	wg       sync.WaitGroup
	log      *logger.Logger
}

// NewBrowserChannel crea el canal en estado default. timeout es la espera máxima
// de una solicitud de permiso; el estado sigue default si vence.
func NewBrowserChannel(timeout time.Duration, feedSize int, log *logger.Logger) *BrowserChannel {
	if log == nil {
		log = logger.Nop()
	}
	if feedSize <= 0 {
		feedSize = DefaultFeedSize
	}
	return &BrowserChannel{
		state:    notification.PermissionDefault,
		feedSize: feedSize,
		timeout:  timeout,
		done:     make(chan struct{}),
		log:      log.Component("notify.browser"),
	}
}

func (b *BrowserChannel) Name() string { return notification.ChannelBrowser }

// Send agrega la notificación al feed si el permiso está concedido.
// En default abre una solicitud de permiso y descarta; en denied descarta.
func (b *BrowserChannel) Send(ctx context.Context, n notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	state := b.state
	if state == notification.PermissionGranted {
		b.feed = append(b.feed, n)
		if len(b.feed) > b.feedSize {
			b.feed = b.feed[len(b.feed)-b.feedSize:]
		}
	}
	b.mu.Unlock()

	switch state {
	case notification.PermissionGranted:
		b.log.Info().
			Str("user", n.AssignedTo.Name).
			Str("role", n.AssignedTo.Role).
			Str("title", n.Title).
			Str("tag", n.Tag).
			Bool("require_interaction", n.RequireInteraction).
			Msg(n.Message)
		return nil
	case notification.PermissionDefault:
		b.RequestAsync()
	}
	return notification.ErrDropped
}

// State estado actual del permiso.
func (b *BrowserChannel) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Pending indica si hay una solicitud de permiso esperando respuesta.
func (b *BrowserChannel) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending != nil
}

// RequestAsync abre una solicitud de permiso si el estado es default y no hay otra abierta.
// No bloquea.
func (b *BrowserChannel) RequestAsync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.state != notification.PermissionDefault || b.pending != nil {
		return
	}
	ch := make(chan struct{})
	b.pending = ch
	b.wg.Add(1)
	go b.await(ch)
	b.log.Info().Dur("timeout", b.timeout).Msg("solicitud de permiso de notificaciones abierta")
}

func (b *BrowserChannel) await(ch chan struct{}) {
	defer b.wg.Done()
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
		b.mu.Lock()
		if b.pending == ch {
			b.pending = nil
		}
		b.mu.Unlock()
		b.log.Warn().Msg("solicitud de permiso sin respuesta, sigue en default")
	case <-b.done:
	}
}

// Resolve registra la respuesta del cliente y cierra la solicitud abierta, si hay.
func (b *BrowserChannel) Resolve(granted bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrChannelClosed
	}
	if granted {
		b.state = notification.PermissionGranted
	} else {
		b.state = notification.PermissionDenied
	}
	if b.pending != nil {
		close(b.pending)
		b.pending = nil
	}
	b.log.Info().Str("permission", b.state).Msg("permiso de notificaciones resuelto")
	return nil
}

// Feed notificaciones entregadas, la más reciente primero.
func (b *BrowserChannel) Feed() []notification.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]notification.Notification, len(b.feed))
	for i, n := range b.feed {
		out[len(b.feed)-1-i] = n
	}
	return out
}

// Close termina la solicitud pendiente y espera a su goroutine.
func (b *BrowserChannel) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
	b.mu.Unlock()
	b.wg.Wait()
}
