// Package i18n holds the user-facing message catalog. Messages are looked up by
// Key and rendered in the best match of the client's Accept-Language among
// English and Indonesian.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Key string

const (
	ValidationFailed  Key = "validation_failed"
	CartEmpty         Key = "cart_empty"
	NotFound          Key = "not_found"
	InvalidTransition Key = "invalid_transition"
	Conflict          Key = "conflict"
	InsufficientStock Key = "insufficient_stock"
	OrderFailed       Key = "order_failed"
	InvoiceNotAllowed Key = "invoice_not_allowed"
	InvoiceFailed     Key = "invoice_failed"
	Upstream          Key = "upstream"
	Internal          Key = "internal"
	Unauthorized      Key = "unauthorized"
	Forbidden         Key = "forbidden"
	DuplicateRequest  Key = "duplicate_request"
)

var supported = []language.Tag{language.English, language.Indonesian}

var messages = map[Key][2]string{
	ValidationFailed:  {"The request is invalid.", "Permintaan tidak valid."},
	CartEmpty:         {"Your cart is empty.", "Keranjang Anda kosong."},
	NotFound:          {"The requested resource was not found.", "Data yang diminta tidak ditemukan."},
	InvalidTransition: {"The order cannot move from %s to %s.", "Status pesanan tidak dapat diubah dari %s ke %s."},
	Conflict: {
		"The order was changed by someone else. Please try again.",
		"Pesanan telah diubah oleh pihak lain. Silakan coba lagi.",
	},
	InsufficientStock: {"Not enough stock for one of the products.", "Stok salah satu produk tidak mencukupi."},
	OrderFailed: {
		"We could not place your order. Nothing was saved and your cart is unchanged.",
		"Pesanan Anda gagal dibuat. Tidak ada data yang tersimpan dan keranjang Anda tidak berubah.",
	},
	InvoiceNotAllowed: {
		"An invoice cannot be issued for a cancelled order.",
		"Faktur tidak dapat dibuat untuk pesanan yang dibatalkan.",
	},
	InvoiceFailed: {
		"The invoice could not be generated right now. Please try again.",
		"Faktur belum dapat dibuat saat ini. Silakan coba lagi.",
	},
	Upstream: {
		"A dependent service is unavailable. Please try again.",
		"Layanan pendukung sedang tidak tersedia. Silakan coba lagi.",
	},
	Internal:         {"Something went wrong.", "Terjadi kesalahan."},
	Unauthorized:     {"Sign in to continue.", "Silakan masuk untuk melanjutkan."},
	Forbidden:        {"You are not allowed to do this.", "Anda tidak memiliki akses untuk tindakan ini."},
	DuplicateRequest: {"This request is already being processed.", "Permintaan ini sedang diproses."},
}

// Catalog renders messages for a negotiated language.
type Catalog struct {
	builder *catalog.Builder
	matcher language.Matcher
}

func NewCatalog() *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range messages {
		for i, tag := range supported {
			// Keys and texts are static; SetString only fails on malformed input.
			_ = b.SetString(tag, string(key), texts[i])
		}
	}
	return &Catalog{builder: b, matcher: language.NewMatcher(supported)}
}

// Printer is a message printer bound to one language.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// ForAcceptLanguage picks the best supported language for an Accept-Language
// header. Empty or malformed headers get English.
func (c *Catalog) ForAcceptLanguage(header string) Printer {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return c.printerFor(language.English)
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.printerFor(language.English)
	}
	return c.printerFor(supported[index])
}

func (c *Catalog) printerFor(tag language.Tag) Printer {
	return Printer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(c.builder))}
}

func (p Printer) Language() language.Tag {
	return p.tag
}

func (p Printer) Text(key Key, args ...any) string {
	return p.printer.Sprintf(string(key), args...)
}
