package charts

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQR кодирует платежную строку счета в QR-код PNG.
func (g *ChartGenerator) GenerateQR(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
