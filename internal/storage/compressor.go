package storage

import (
	"bytes"
	"errors"
	"fmt"
	"tabsleep/internal/storage/interfaces"

	"github.com/klauspost/compress/zstd"
)

var ErrNotZstdFrame = errors.New("store data is not a zstd frame")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ZstdCompression encodes the store document. The store is a few hundred
// bytes rewritten on every settings change, so a single fast encoder is used.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderCRC(true),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

func (z *ZstdCompression) Compress(doc []byte) ([]byte, error) {
	return z.encoder.EncodeAll(doc, nil), nil
}

func (z *ZstdCompression) Decompress(frame []byte) ([]byte, error) {
	if !bytes.HasPrefix(frame, zstdMagic) {
		return nil, ErrNotZstdFrame
	}
	doc, err := z.decoder.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd frame: %w", err)
	}
	return doc, nil
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}
