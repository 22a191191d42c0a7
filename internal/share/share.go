// Package share hands the report text to the outside world: chat deep
// links, the system clipboard and the system browser.
package share

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

const (
	whatsAppBase = "https://wa.me/?text="
	telegramBase = "https://t.me/share/url?text="
)

// ErrClipboardDenied is returned when the system clipboard rejects a write.
var ErrClipboardDenied = errors.New("clipboard unavailable")

// Channel is a share destination.
type Channel string

const (
	WhatsApp Channel = "whatsapp"
	Telegram Channel = "telegram"
)

// URL builds the deep link that pre-fills text in the channel's composer.
func URL(ch Channel, text string) (string, error) {
	switch ch {
	case WhatsApp:
		return WhatsAppURL(text), nil
	case Telegram:
		return TelegramURL(text), nil
	default:
		return "", fmt.Errorf("unknown share channel %q", ch)
	}
}

func WhatsAppURL(text string) string { return whatsAppBase + EscapeComponent(text) }

func TelegramURL(text string) string { return telegramBase + EscapeComponent(text) }

// EscapeComponent percent-encodes s like a browser's encodeURIComponent:
// spaces become %20 and the marks -_.!~*'() are left alone.
func EscapeComponent(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	for _, m := range []string{"!", "'", "(", ")", "*"} {
		e = strings.ReplaceAll(e, url.QueryEscape(m), m)
	}
	return e
}

// Clipboard writes text to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns a Clipboard backed by the OS clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

// Copy puts text on the clipboard. Failures wrap ErrClipboardDenied.
func (c *Clipboard) Copy(text string) error {
	if err := c.write(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardDenied, err)
	}
	return nil
}

// Opener launches URLs in the system browser.
type Opener struct {
	open func(u string) error
}

// NewOpener returns an Opener backed by the platform's default browser.
// The launcher's own output is discarded so it cannot draw over the TUI.
func NewOpener() *Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{open: browser.OpenURL}
}

// Open opens u in a new browser window or tab.
func (o *Opener) Open(u string) error {
	if err := o.open(u); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
