package svgparse

import (
	"bytes"

	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
)

const (
	bomUTF8    = "\xEF\xBB\xBF"
	bomUTF16BE = "\xFE\xFF"
	bomUTF16LE = "\xFF\xFE"
)

var (
	utf8Transform              = xunicode.UTF8BOM
	utf16LittleEndianTransform = xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM)
	utf16BigEndianTransform    = xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM)
)

// normalizeToUTF8 accepts input encoded as UTF-8, UTF-16LE or
// UTF-16BE, with or without a leading BOM, and returns the equivalent
// valid UTF-8 bytes. Older tooling (and some SVG exporters) emit
// UTF-16, so this runs before the outermost-<svg> regex isolation,
// otherwise that regex would never match a UTF-16 payload.
func normalizeToUTF8(bs []byte) ([]byte, error) {
	enc := utf8Transform
	switch {
	case bytes.HasPrefix(bs, []byte(bomUTF8)):
		enc = utf8Transform
	case bytes.HasPrefix(bs, []byte(bomUTF16BE)):
		enc = utf16BigEndianTransform
	case bytes.HasPrefix(bs, []byte(bomUTF16LE)):
		enc = utf16LittleEndianTransform
	default:
		enc = guessUTFVariant(bs)
	}
	return enc.NewDecoder().Bytes(bs)
}

// guessUTFVariant guesses the encoding of bs when no BOM is present,
// using the presence and parity of zero bytes as a signal: valid
// UTF-8 text never contains a zero byte except to encode U+0000,
// while ASCII-heavy UTF-16 text has a zero byte every other position.
func guessUTFVariant(bs []byte) encoding.Encoding {
	const checkLimit = 200
	if len(bs) > checkLimit {
		bs = bs[:checkLimit]
	}

	evenZeros, oddZeros := 0, 0
	for i, b := range bs {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			evenZeros++
		} else {
			oddZeros++
		}

		const (
			decisionThreshold = 20
			utf16Threshold    = 15
		)
		if evenZeros+oddZeros < decisionThreshold {
			continue
		}
		if evenZeros > utf16Threshold {
			return utf16BigEndianTransform
		} else if oddZeros > utf16Threshold {
			return utf16LittleEndianTransform
		}
		return utf8Transform
	}
	return utf8Transform
}
