// Package qrgen produces the QR code images stamped on generated pages.
package qrgen
