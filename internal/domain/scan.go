package domain

import "context"

// BarcodeFormat names a symbology the decode library is configured to read
type BarcodeFormat string

const (
	FormatCode128      BarcodeFormat = "code_128"
	FormatEAN13        BarcodeFormat = "ean"
	FormatEAN8         BarcodeFormat = "ean_8"
	FormatCode39       BarcodeFormat = "code_39"
	FormatCode39VINExt BarcodeFormat = "code_39_vin"
	FormatCodabar      BarcodeFormat = "codabar"
	FormatUPCA         BarcodeFormat = "upc"
	FormatUPCE         BarcodeFormat = "upc_e"
)

// SupportedFormats is the symbology set handed to the decoder on every scan
var SupportedFormats = []BarcodeFormat{
	FormatCode128,
	FormatEAN13,
	FormatEAN8,
	FormatCode39,
	FormatCode39VINExt,
	FormatCodabar,
	FormatUPCA,
	FormatUPCE,
}

// VideoStream is an open camera stream. Stop must be safe to call more than
// once and must release the underlying device.
type VideoStream interface {
	Stop()
}

// Camera acquires the rear-facing camera. Acquire returns ErrCameraDenied when
// the user refuses access.
type Camera interface {
	Acquire(ctx context.Context) (VideoStream, error)
}

// BarcodeDecoder is the external decode library: it consumes a video stream
// and emits decoded-string events. Start returns ErrDecoderInit when the
// library cannot attach to the stream. Stop must be idempotent.
type BarcodeDecoder interface {
	Start(stream VideoStream, formats []BarcodeFormat, onDecode func(code string)) error
	Stop()
}
